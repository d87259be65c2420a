package services

import (
	"testing"

	"safra-backend/entity"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func reviewFixtures() ([]entity.HarvestRecord, []entity.Customer) {
	customers := []entity.Customer{
		{Model: gorm.Model{ID: 1}, Name: "AGROPECUÁRIA BOA ESPERANÇA LTDA", City: "Sorriso"},
		{Model: gorm.Model{ID: 2}, Name: "JOSÉ ALMEIDA CAMPOS", City: "Cascavel"},
	}
	records := []entity.HarvestRecord{
		{RecordNumber: "REG-26-1001", CustomerID: "1", City: "Sorriso", Status: entity.StatusPending, PlantedArea: 100},
		{RecordNumber: "REG-26-1002", CustomerID: "MANUAL", CustomerName: "Fazenda Horizonte", City: "Barreiras", Status: entity.StatusApproved, PlantedArea: 250},
		{RecordNumber: "REG-26-1003", CustomerID: "2", City: "Cascavel", Status: entity.StatusApproved, PlantedArea: 50},
		{RecordNumber: "REG-26-1004", CustomerID: "99", City: "Rondonópolis", Status: entity.StatusRejected, PlantedArea: 75},
	}
	return records, customers
}

func TestResolveCustomerName(t *testing.T) {
	records, customers := reviewFixtures()

	assert.Equal(t, "AGROPECUÁRIA BOA ESPERANÇA LTDA", ResolveCustomerName(&records[0], customers))
	assert.Equal(t, "Fazenda Horizonte", ResolveCustomerName(&records[1], customers), "manual name wins")
	assert.Equal(t, UnknownCustomer, ResolveCustomerName(&records[3], customers), "lookup miss falls back to sentinel")
}

func TestFilterRecords(t *testing.T) {
	records, customers := reviewFixtures()

	tests := []struct {
		name   string
		status string
		term   string
		want   []string
	}{
		{"all no term", entity.StatusAll, "", []string{"REG-26-1001", "REG-26-1002", "REG-26-1003", "REG-26-1004"}},
		{"approved only", entity.StatusApproved, "", []string{"REG-26-1002", "REG-26-1003"}},
		{"pending only", entity.StatusPending, "", []string{"REG-26-1001"}},
		{"term on customer name", entity.StatusAll, "josé", []string{"REG-26-1003"}},
		{"term on manual name", entity.StatusAll, "horizonte", []string{"REG-26-1002"}},
		{"term on record number", entity.StatusAll, "26-1004", []string{"REG-26-1004"}},
		{"term on city", entity.StatusAll, "sorriso", []string{"REG-26-1001"}},
		{"status and term combine", entity.StatusApproved, "cascavel", []string{"REG-26-1003"}},
		{"status and term exclude", entity.StatusPending, "cascavel", []string{}},
		{"case insensitive", entity.StatusAll, "FAZENDA", []string{"REG-26-1002"}},
		{"unknown sentinel is searchable", entity.StatusAll, "desconhecido", []string{"REG-26-1004"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterRecords(records, customers, tc.status, tc.term)
			numbers := make([]string, 0, len(got))
			for _, r := range got {
				numbers = append(numbers, r.RecordNumber)
			}
			assert.Equal(t, tc.want, numbers)
		})
	}
}

func TestSummarize(t *testing.T) {
	records, _ := reviewFixtures()

	s := Summarize(records)
	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 475.0, s.TotalPlantedArea)
	assert.Equal(t, 1, s.PendingCount)
	assert.Equal(t, 2, s.ApprovedCount)
	assert.Equal(t, 1, s.RejectedCount)
}
