package services

import (
	"strconv"
	"strings"

	"safra-backend/entity"
)

// UnknownCustomer is shown when a record carries neither a manual name
// nor a resolvable customer reference.
const UnknownCustomer = "Cliente Desconhecido"

// ResolveCustomerName prefers the manually typed name, then the lookup
// table, then the unknown sentinel.
func ResolveCustomerName(rec *entity.HarvestRecord, customers []entity.Customer) string {
	if name := strings.TrimSpace(rec.CustomerName); name != "" {
		return name
	}
	if id, err := strconv.Atoi(rec.CustomerID); err == nil {
		for _, c := range customers {
			if c.ID == uint(id) {
				return c.Name
			}
		}
	}
	return UnknownCustomer
}

func ResolveCropName(cropID string, crops []entity.Crop) string {
	if id, err := strconv.Atoi(cropID); err == nil {
		for _, c := range crops {
			if c.ID == uint(id) {
				return c.Name
			}
		}
	}
	return "Cultura Desconhecida"
}

// FilterRecords is the review console's derived view: status narrowing
// (skipped for ALL) ANDed with a case-insensitive substring match on the
// resolved customer name, register number, or city.
func FilterRecords(records []entity.HarvestRecord, customers []entity.Customer, status, term string) []entity.HarvestRecord {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]entity.HarvestRecord, 0, len(records))
	for i := range records {
		rec := records[i]
		if status != "" && status != entity.StatusAll && rec.Status != status {
			continue
		}
		if term != "" {
			name := strings.ToLower(ResolveCustomerName(&rec, customers))
			number := strings.ToLower(rec.RecordNumber)
			city := strings.ToLower(rec.City)
			if !strings.Contains(name, term) && !strings.Contains(number, term) && !strings.Contains(city, term) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// Summary feeds the dashboard KPI cards.
type Summary struct {
	TotalRecords     int     `json:"totalRecords"`
	TotalPlantedArea float64 `json:"totalPlantedArea"`
	PendingCount     int     `json:"pendingCount"`
	ApprovedCount    int     `json:"approvedCount"`
	RejectedCount    int     `json:"rejectedCount"`
}

func Summarize(records []entity.HarvestRecord) Summary {
	s := Summary{TotalRecords: len(records)}
	for i := range records {
		s.TotalPlantedArea += records[i].PlantedArea
		switch records[i].Status {
		case entity.StatusPending:
			s.PendingCount++
		case entity.StatusApproved:
			s.ApprovedCount++
		case entity.StatusRejected:
			s.RejectedCount++
		}
	}
	return s
}
