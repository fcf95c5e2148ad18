// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: shared persistence fields (BaseModel)
//   - partner.go: customer context models (Customer, CustomerGroup)
//   - trade.go: order context models (BuyOrder, BuyOrderDetail, PaymentType, Status)
//   - shipping.go: carrier context models (Company, EcsBuyOrder)
package models
