package controllers

import (
	"safra-backend/pkg/resp"
	"safra-backend/repository"

	"github.com/gin-gonic/gin"
)

// LookupController serves the read-only reference tables the form picks
// from.
type LookupController struct {
	Customers *repository.CustomerRepository
	Crops     *repository.CropRepository
}

func NewLookupController(customers *repository.CustomerRepository, crops *repository.CropRepository) *LookupController {
	return &LookupController{Customers: customers, Crops: crops}
}

// GET /customers
func (ctl *LookupController) ListCustomers(c *gin.Context) {
	customers, err := ctl.Customers.FindAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": customers})
}

// GET /crops
func (ctl *LookupController) ListCrops(c *gin.Context) {
	crops, err := ctl.Crops.FindAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": crops})
}
