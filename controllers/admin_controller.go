package controllers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"safra-backend/entity"
	"safra-backend/pkg/resp"
	"safra-backend/repository"
	"safra-backend/services"
	"safra-backend/utils"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	Records   *services.RecordService
	Customers *repository.CustomerRepository
	Crops     *repository.CropRepository
}

func NewAdminController(records *services.RecordService, customers *repository.CustomerRepository, crops *repository.CropRepository) *AdminController {
	return &AdminController{Records: records, Customers: customers, Crops: crops}
}

type ReviewResponse struct {
	RecordID   uint   `json:"recordId"`
	Status     string `json:"status"`
	ReviewedBy string `json:"reviewedBy"`
}

// filtered loads everything and applies the console filter from the
// query string (?status=&q=).
func (ctl *AdminController) filtered(c *gin.Context) (all, matched []entity.HarvestRecord, customers []entity.Customer, crops []entity.Crop, err error) {
	status := c.DefaultQuery("status", entity.StatusAll)
	term := c.Query("q")

	all, err = ctl.Records.List()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	// lookup failures degrade to sentinel names, but never silently
	var lerr error
	if customers, lerr = ctl.Customers.FindAll(); lerr != nil {
		log.Errorf("console: fetch customers failed: %v", lerr)
	}
	if crops, lerr = ctl.Crops.FindAll(); lerr != nil {
		log.Errorf("console: fetch crops failed: %v", lerr)
	}

	matched = services.FilterRecords(all, customers, status, term)
	return all, matched, customers, crops, nil
}

// GET /admin/records?status=&q=
func (ctl *AdminController) ListRecords(c *gin.Context) {
	all, matched, customers, crops, err := ctl.filtered(c)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	items := make([]RecordResponse, 0, len(matched))
	for i := range matched {
		items = append(items, toRecordResponse(&matched[i], customers, crops))
	}
	resp.OK(c, gin.H{
		"items":   items,
		"summary": services.Summarize(all),
	})
}

// PATCH /admin/records/:id/approve
func (ctl *AdminController) Approve(c *gin.Context) {
	ctl.review(c, entity.StatusApproved)
}

// PATCH /admin/records/:id/reject
func (ctl *AdminController) Reject(c *gin.Context) {
	ctl.review(c, entity.StatusRejected)
}

func (ctl *AdminController) review(c *gin.Context, status string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid record id")
		return
	}

	rec, err := ctl.Records.UpdateStatus(uint(id), status, utils.CurrentUserName(c))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "record not found")
	case errors.Is(err, services.ErrNotPending):
		resp.Conflict(c, "record is not pending")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, ReviewResponse{RecordID: rec.ID, Status: rec.Status, ReviewedBy: rec.ReviewedBy})
	}
}

// GET /admin/records/export?status=&q= — streams the xlsx the dashboard
// download button asks for, honoring the active filter.
func (ctl *AdminController) Export(c *gin.Context) {
	_, matched, customers, crops, err := ctl.filtered(c)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	f, err := services.ExportXLSX(matched, customers, crops)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	name := fmt.Sprintf("registros_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+url.PathEscape(name))
	if err := f.Write(c.Writer); err != nil {
		resp.ServerError(c, err)
	}
}
