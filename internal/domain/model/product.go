package model

import (
	"github.com/shopspring/decimal"
)

// 商品分類，對應不同的規格結構
type ProductCategory string

const (
	CategoryRacket      ProductCategory = "racket"      // 羽球拍
	CategoryShuttlecock ProductCategory = "shuttlecock" // 羽毛球
	CategoryShoes       ProductCategory = "shoes"       // 羽球鞋
	CategoryBag         ProductCategory = "bag"         // 拍袋
	CategoryApparel     ProductCategory = "apparel"     // 羽球服飾
	CategoryAccessory   ProductCategory = "accessory"   // 配件
)

// RacketSpecs 羽球拍規格
type RacketSpecs struct {
	Weight        string `json:"weight,omitempty"`
	Balance       string `json:"balance,omitempty"` // Head Heavy / Even Balance / Head Light
	Flexibility   string `json:"flexibility,omitempty"`
	StringTension string `json:"string_tension,omitempty"`
	ShaftMaterial string `json:"shaft_material,omitempty"`
	FrameWidth    string `json:"frame_width,omitempty"`
	Level         string `json:"level,omitempty"`
}

// ShoeSpecs 羽球鞋規格
type ShoeSpecs struct {
	Size          string `json:"size,omitempty"`
	ShoeSole      string `json:"shoe_sole,omitempty"`
	Cushioning    string `json:"cushioning,omitempty"`
	UpperMaterial string `json:"upper_material,omitempty"`
}

// ApparelSpecs 服飾規格
type ApparelSpecs struct {
	Size   string `json:"size,omitempty"`
	Fabric string `json:"fabric,omitempty"`
	Fit    string `json:"fit,omitempty"`
	Color  string `json:"color,omitempty"`
}

// CustomSpec 其他分類使用的自由鍵值規格
type CustomSpec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Specifications 依分類擇一填入，避免單一大結構塞滿 optional 欄位
type Specifications struct {
	Racket  *RacketSpecs  `json:"racket,omitempty"`
	Shoes   *ShoeSpecs    `json:"shoes,omitempty"`
	Apparel *ApparelSpecs `json:"apparel,omitempty"`
	Custom  []CustomSpec  `json:"custom,omitempty"`
}

type Product struct {
	ProductID     string          `gorm:"primaryKey;type:varchar(255)" json:"product_id"`
	Name          string          `gorm:"not null;type:varchar(100)" json:"name"`
	Description   string          `gorm:"not null;type:text" json:"description"`
	Price         decimal.Decimal `gorm:"not null;type:decimal(14,2)" json:"price"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(14,2)" json:"original_price"`
	Stock         uint            `gorm:"not null;type:int" json:"stock"`
	Category      ProductCategory `gorm:"not null;type:varchar(50)" json:"category"`
	Brand         string          `gorm:"not null;type:varchar(100)" json:"brand"`
	MainImage     string          `gorm:"type:varchar(500)" json:"main_image"`
	Specs         Specifications  `gorm:"serializer:json" json:"specs"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	BaseModel
}
