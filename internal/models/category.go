package models

import "time"

// Category is a product type boards belong to. Identity is immutable;
// attributes may be edited. A category cannot be deleted while boards
// still reference it.
type Category struct {
	ID                   string    `bson:"id" json:"id"`
	Name                 string    `bson:"name" json:"name"`
	Description          string    `bson:"description" json:"description"`
	Manufacturer         string    `bson:"manufacturer" json:"manufacturer"`
	Version              string    `bson:"version" json:"version"`
	LeadTimeDays         int       `bson:"lead_time_days" json:"lead_time_days"`
	MinimumStockQuantity int       `bson:"minimum_stock_quantity" json:"minimum_stock_quantity"`
	PictureURL           string    `bson:"picture_url,omitempty" json:"picture_url,omitempty"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
	CreatedBy            string    `bson:"created_by" json:"created_by"`
}
