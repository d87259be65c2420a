package entity

import "gorm.io/gorm"

// Sales regionals.
const (
	RegionalSul         = "SUL"
	RegionalSudeste     = "SUDESTE"
	RegionalCentroOeste = "CENTRO_OESTE"
	RegionalNorte       = "NORTE"
	RegionalNordeste    = "NORDESTE"
)

// Customer is a read-only lookup entity. The form snapshots its fields
// into the record at submission instead of joining at read time.
type Customer struct {
	gorm.Model
	Name        string `gorm:"size:255;not null" json:"name"`
	TradeName   string `gorm:"column:trade_name" json:"tradeName"`
	Regional    string `json:"regional"`
	ManagerName string `gorm:"column:manager_name" json:"managerName"`
	SellerName  string `gorm:"column:seller_name" json:"sellerName"`
	City        string `json:"city"`
	State       string `gorm:"size:2" json:"state"`
}
