package cards

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
	"github.com/luckyegg/storefront-backend/pkg/enums"
)

// CreateCardInput is the admin payload for a new listing.
type CreateCardInput struct {
	Name          string           `json:"name" validate:"required"`
	Price         decimal.Decimal  `json:"price" validate:"required"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Rarity        string           `json:"rarity" validate:"required"`
	Condition     string           `json:"condition" validate:"required"`
	StockQuantity int              `json:"stock_quantity" validate:"gte=0"`
	VideoEpisode  *string          `json:"video_episode,omitempty"`
	PullDate      *time.Time       `json:"pull_date,omitempty"`
	SetName       *string          `json:"set_name,omitempty"`
	CardNumber    *string          `json:"card_number,omitempty"`
	Description   *string          `json:"description,omitempty"`
	IsFeatured    bool             `json:"is_featured"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// UpdateCardInput carries only the fields the admin wants to change.
type UpdateCardInput struct {
	Name          *string          `json:"name,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	Rarity        *string          `json:"rarity,omitempty"`
	Condition     *string          `json:"condition,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	VideoEpisode  *string          `json:"video_episode,omitempty"`
	PullDate      *time.Time       `json:"pull_date,omitempty"`
	SetName       *string          `json:"set_name,omitempty"`
	CardNumber    *string          `json:"card_number,omitempty"`
	Description   *string          `json:"description,omitempty"`
	IsFeatured    *bool            `json:"is_featured,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func (in CreateCardInput) toModel(rarity enums.Rarity, condition enums.Condition) *models.Card {
	card := &models.Card{
		Name:          in.Name,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		ImageURL:      in.ImageURL,
		Rarity:        rarity,
		Condition:     condition,
		StockQuantity: in.StockQuantity,
		VideoEpisode:  in.VideoEpisode,
		PullDate:      in.PullDate,
		SetName:       in.SetName,
		CardNumber:    in.CardNumber,
		Description:   in.Description,
		IsFeatured:    in.IsFeatured,
		IsActive:      true,
	}
	if in.IsActive != nil {
		card.IsActive = *in.IsActive
	}
	return card
}

func (in UpdateCardInput) apply(card *models.Card, rarity *enums.Rarity, condition *enums.Condition) {
	if in.Name != nil {
		card.Name = *in.Name
	}
	if in.Price != nil {
		card.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		card.OriginalPrice = in.OriginalPrice
	}
	if in.ImageURL != nil {
		card.ImageURL = *in.ImageURL
	}
	if rarity != nil {
		card.Rarity = *rarity
	}
	if condition != nil {
		card.Condition = *condition
	}
	if in.StockQuantity != nil {
		card.StockQuantity = *in.StockQuantity
	}
	if in.VideoEpisode != nil {
		card.VideoEpisode = in.VideoEpisode
	}
	if in.PullDate != nil {
		card.PullDate = in.PullDate
	}
	if in.SetName != nil {
		card.SetName = in.SetName
	}
	if in.CardNumber != nil {
		card.CardNumber = in.CardNumber
	}
	if in.Description != nil {
		card.Description = in.Description
	}
	if in.IsFeatured != nil {
		card.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		card.IsActive = *in.IsActive
	}
}
