package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceOfferLog records one price quote shown to a shopper. Exactly one of
// FareBasisCodeID / AncillaryProductID is set; the ingestion path rejects
// anything else and a CHECK constraint backs it up. Rows are immutable after
// creation except for their lifecycle flag.
type PriceOfferLog struct {
	ID                  uuid.UUID       `json:"id"`
	FareBasisCodeID     *uuid.UUID      `json:"fare_basis_code_id,omitempty"`
	AncillaryProductID  *uuid.UUID      `json:"ancillary_product_id,omitempty"`
	ContextAttributesID uuid.UUID       `json:"context_attributes_id"`
	OfferPrice          decimal.Decimal `json:"offer_price"`
	QuotedAt            time.Time       `json:"quoted_at"`
	Deleted             bool            `json:"deleted"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (p *PriceOfferLog) IsDeleted() bool { return p.Deleted }

func (p *PriceOfferLog) Key() uuid.UUID { return p.ID }

// OfferSubjectKind distinguishes the two things a price offer can quote.
type OfferSubjectKind string

const (
	SubjectFareBasisCode    OfferSubjectKind = "fare_basis_code"
	SubjectAncillaryProduct OfferSubjectKind = "ancillary_product"
)

// OfferSubject names one fare basis code or one ancillary product. Callers of
// the analytics path supply exactly one subject per call.
type OfferSubject struct {
	Kind OfferSubjectKind `json:"kind"`
	ID   uuid.UUID        `json:"id"`
}

// PriceOfferSummary is derived, never stored. OfferCount is the number of
// matching non-deleted logs; AveragePrice is their unweighted arithmetic mean.
type PriceOfferSummary struct {
	Subject      OfferSubject    `json:"subject"`
	AveragePrice decimal.Decimal `json:"average_price"`
	MinPrice     decimal.Decimal `json:"min_price"`
	MaxPrice     decimal.Decimal `json:"max_price"`
	OfferCount   int             `json:"offer_count"`
}
