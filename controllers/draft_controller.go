package controllers

import (
	"errors"
	"io"

	"safra-backend/pkg/resp"
	"safra-backend/services"
	"safra-backend/utils"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

type DraftController struct {
	Service *services.DraftService
}

func NewDraftController(service *services.DraftService) *DraftController {
	return &DraftController{Service: service}
}

type SetFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

type AddVisitRequest struct {
	Stage   string `json:"stage"`
	Opinion string `json:"opinion"`
	Date    string `json:"date"` // yyyy-mm-dd
}

type SetLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Target    string  `json:"target" binding:"required"`
}

// POST /drafts
func (ctl *DraftController) Create(c *gin.Context) {
	draft := ctl.Service.NewDraft(utils.CurrentUserName(c))
	resp.Created(c, draft)
}

// GET /drafts/:id
func (ctl *DraftController) Get(c *gin.Context) {
	draft, err := ctl.Service.Get(c.Param("id"))
	if err != nil {
		resp.NotFound(c, "draft not found")
		return
	}
	resp.OK(c, draft)
}

// PATCH /drafts/:id/fields
func (ctl *DraftController) SetField(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := ctl.Service.SetField(c.Param("id"), req.Field, req.Value); err != nil {
		ctl.fail(c, err)
		return
	}
	resp.OK(c, gin.H{"field": req.Field})
}

// POST /drafts/:id/visits — missing inputs are a quiet no-op, mirroring
// the disabled add button.
func (ctl *DraftController) AddVisit(c *gin.Context) {
	var req AddVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	visit, err := ctl.Service.AddVisit(c.Param("id"), req.Stage, req.Opinion, req.Date)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	if visit == nil {
		resp.OK(c, gin.H{"added": false})
		return
	}
	resp.Created(c, visit)
}

// POST /drafts/:id/location
func (ctl *DraftController) SetLocation(c *gin.Context) {
	var req SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	value, err := ctl.Service.SetLocation(c.Param("id"), req.Latitude, req.Longitude, req.Target)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	resp.OK(c, gin.H{"target": req.Target, "value": value})
}

// POST /drafts/:id/submit — multipart with optional images[], or a bare
// POST when there are none.
func (ctl *DraftController) Submit(c *gin.Context) {
	var images []services.ImageUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["images"] {
			file, err := fh.Open()
			if err != nil {
				log.WithField("file", fh.Filename).Errorf("open upload failed: %v", err)
				continue
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				log.WithField("file", fh.Filename).Errorf("read upload failed: %v", err)
				continue
			}
			images = append(images, services.ImageUpload{FileName: fh.Filename, Data: data})
		}
	}

	rec, err := ctl.Service.Submit(c.Param("id"), images)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	resp.Created(c, rec)
}

func (ctl *DraftController) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDraftNotFound):
		resp.NotFound(c, "draft not found")
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrFieldType),
		errors.Is(err, services.ErrBadDate),
		errors.Is(err, services.ErrBadTarget),
		errors.Is(err, services.ErrBadPosition):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
