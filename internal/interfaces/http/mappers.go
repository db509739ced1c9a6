package http

import (
	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

func toCartResponse(snap sales.CartSnapshot) dto.CartResponse {
	out := dto.CartResponse{
		Lines:        make([]dto.CartLineResponse, 0, len(snap.Lines)),
		DocumentType: snap.DocumentType,
		Subtotal:     snap.Subtotal,
		TaxBase:      snap.TaxBase,
		Tax:          snap.Tax,
		Total:        snap.Total,
		ItemCount:    snap.ItemCount,
	}
	if snap.Customer != nil {
		out.CustomerID = snap.Customer.ID
		out.CustomerName = snap.Customer.Name
	}
	for _, l := range snap.Lines {
		out.Lines = append(out.Lines, dto.CartLineResponse{
			ID:          l.ID,
			ProductID:   l.Product.ID,
			Code:        l.Product.Code,
			Description: l.Product.Description,
			PriceID:     l.Price.ID,
			UnitPrice:   l.Price.UnitPrice,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal(),
		})
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		DocumentType:  o.DocumentType,
		Date:          o.Date,
		Status:        o.Status,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		SellerID:      o.SellerID,
		Subtotal:      o.Subtotal,
		DiscountTotal: o.DiscountTotal,
		Tax:           o.Tax,
		Total:         o.Total,
		CostTotal:     o.CostTotal,
		Profit:        o.Profit(),
		Notes:         o.Notes,
	}
}

func toOrderDetailResponse(res *sales.OrderResult) dto.OrderResponse {
	out := toOrderResponse(res.Order)
	out.Change = res.Change
	for _, l := range res.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			PriceID:   l.PriceID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			Subtotal:  l.Subtotal,
			UnitCost:  l.UnitCost,
		})
	}
	for _, p := range res.Payments {
		out.Payments = append(out.Payments, dto.PaymentResponse{
			ID:        p.ID,
			Method:    p.Method,
			Amount:    p.Amount,
			Reference: p.Reference,
		})
	}
	out.Movements = toMovementResponses(res.Movements)
	return out
}

func toMovementResponses(movs []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			Type:           m.Kind,
			Quantity:       m.Quantity,
			Label:          m.SignedLabel(),
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			Reason:         m.Reason,
			UserID:         m.UserID,
			OrderID:        m.OrderID,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out
}

func toStockResponse(p *entity.Product, s *entity.Stock) dto.StockResponse {
	out := dto.StockResponse{
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		Minimum:   s.Minimum,
		Maximum:   s.Maximum,
		Status:    s.Status(),
		UpdatedAt: s.UpdatedAt,
	}
	if p != nil {
		out.Code = p.Code
		out.Description = p.Description
	}
	return out
}

func toLedgerCheckResponse(c *inventory.LedgerCheck) dto.LedgerCheckResponse {
	out := dto.LedgerCheckResponse{
		ProductID:  c.ProductID,
		Balance:    c.Balance,
		Replayed:   c.Replayed,
		Movements:  c.Movements,
		Consistent: c.Consistent,
	}
	if c.BrokenAt >= 0 {
		at := c.BrokenAt
		out.BrokenAt = &at
	}
	return out
}

func toPriceResponse(p *entity.Price) dto.PriceResponse {
	return dto.PriceResponse{
		ID:             p.ID,
		ProductID:      p.ProductID,
		UnitPrice:      p.UnitPrice,
		WholesalePrice: p.WholesalePrice,
		NetCost:        p.NetCost,
		BaseCost:       p.BaseCost,
		MinimumUnit:    p.MinimumUnit,
		PurchaseUnit:   p.PurchaseUnit,
		BonusUnit:      p.BonusUnit,
		Discount1:      p.Discount1,
		Discount2:      p.Discount2,
		Discount3:      p.Discount3,
		Margin:         p.Margin(),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}
