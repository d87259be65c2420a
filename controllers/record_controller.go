package controllers

import (
	"sync"
	"time"

	"safra-backend/entity"
	"safra-backend/pkg/resp"
	"safra-backend/repository"
	"safra-backend/services"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

type RecordController struct {
	Records   *services.RecordService
	Customers *repository.CustomerRepository
	Crops     *repository.CropRepository
}

func NewRecordController(records *services.RecordService, customers *repository.CustomerRepository, crops *repository.CropRepository) *RecordController {
	return &RecordController{Records: records, Customers: customers, Crops: crops}
}

// ====== Response DTOs ======

type VisitResponse struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Stage   string `json:"stage"`
	Opinion string `json:"opinion"`
	Author  string `json:"author"`
}

type ImageResponse struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	URL      string `json:"url"`
}

type RecordResponse struct {
	ID                 uint            `json:"id"`
	RecordNumber       string          `json:"recordNumber"`
	SubmissionDate     string          `json:"submissionDate"`
	Status             string          `json:"status"`
	CustomerID         string          `json:"customerId"`
	CustomerName       string          `json:"customerName"`
	PropertyName       string          `json:"propertyName"`
	LocationURL        string          `json:"locationUrl"`
	CropID             string          `json:"cropId"`
	CropName           string          `json:"cropName"`
	TotalArea          float64         `json:"totalArea"`
	PlantedArea        float64         `json:"plantedArea"`
	RegistrationNumber string          `json:"registrationNumber"`
	CprfCoordinates    string          `json:"cprfCoordinates"`
	Regional           string          `json:"regional"`
	ManagerName        string          `json:"managerName"`
	SellerName         string          `json:"sellerName"`
	City               string          `json:"city"`
	State              string          `json:"state"`
	ReviewedAt         string          `json:"reviewedAt,omitempty"`
	ReviewedBy         string          `json:"reviewedBy,omitempty"`
	Visits             []VisitResponse `json:"visits"`
	Images             []ImageResponse `json:"images"`
}

// toRecordResponse builds the display shape: the resolved customer and
// crop names, and the visit history most recent first. The stored visit
// order stays insertion order.
func toRecordResponse(rec *entity.HarvestRecord, customers []entity.Customer, crops []entity.Crop) RecordResponse {
	out := RecordResponse{
		ID:                 rec.ID,
		RecordNumber:       rec.RecordNumber,
		SubmissionDate:     rec.SubmissionDate.Format(time.RFC3339),
		Status:             rec.Status,
		CustomerID:         rec.CustomerID,
		CustomerName:       services.ResolveCustomerName(rec, customers),
		PropertyName:       rec.PropertyName,
		LocationURL:        rec.LocationURL,
		CropID:             rec.CropID,
		CropName:           services.ResolveCropName(rec.CropID, crops),
		TotalArea:          rec.TotalArea,
		PlantedArea:        rec.PlantedArea,
		RegistrationNumber: rec.RegistrationNumber,
		CprfCoordinates:    rec.CprfCoordinates,
		Regional:           rec.Regional,
		ManagerName:        rec.ManagerName,
		SellerName:         rec.SellerName,
		City:               rec.City,
		State:              rec.State,
		ReviewedBy:         rec.ReviewedBy,
		Visits:             make([]VisitResponse, 0, len(rec.Visits)),
		Images:             make([]ImageResponse, 0, len(rec.Images)),
	}
	if rec.ReviewedAt != nil {
		out.ReviewedAt = rec.ReviewedAt.Format(time.RFC3339)
	}

	for i := len(rec.Visits) - 1; i >= 0; i-- {
		v := rec.Visits[i]
		out.Visits = append(out.Visits, VisitResponse{
			ID:      v.ID,
			Date:    v.VisitedAt.Format(time.RFC3339),
			Stage:   v.Stage,
			Opinion: v.Opinion,
			Author:  v.Author,
		})
	}
	for _, img := range rec.Images {
		out.Images = append(out.Images, ImageResponse{
			ID:       img.ID,
			FileName: img.FileName,
			FileSize: img.FileSize,
			URL:      img.URL,
		})
	}
	return out
}

// GET /records
func (ctl *RecordController) List(c *gin.Context) {
	records, err := ctl.Records.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	customers, err := ctl.Customers.FindAll()
	if err != nil {
		log.Errorf("list: fetch customers failed: %v", err)
	}
	crops, err := ctl.Crops.FindAll()
	if err != nil {
		log.Errorf("list: fetch crops failed: %v", err)
	}

	items := make([]RecordResponse, 0, len(records))
	for i := range records {
		items = append(items, toRecordResponse(&records[i], customers, crops))
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /bootstrap — the form's initial load. Customers, crops and records
// are fetched concurrently; a failed leg logs and yields an empty list so
// the form still comes up partially populated.
func (ctl *RecordController) Bootstrap(c *gin.Context) {
	var (
		wg        sync.WaitGroup
		customers []entity.Customer
		crops     []entity.Crop
		records   []entity.HarvestRecord
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if customers, err = ctl.Customers.FindAll(); err != nil {
			log.Errorf("bootstrap: fetch customers failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if crops, err = ctl.Crops.FindAll(); err != nil {
			log.Errorf("bootstrap: fetch crops failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if records, err = ctl.Records.List(); err != nil {
			log.Errorf("bootstrap: fetch records failed: %v", err)
		}
	}()
	wg.Wait()

	items := make([]RecordResponse, 0, len(records))
	for i := range records {
		items = append(items, toRecordResponse(&records[i], customers, crops))
	}
	resp.OK(c, gin.H{
		"customers": customers,
		"crops":     crops,
		"records":   items,
	})
}
