package testutil

import "github.com/jhoicas/pos-ventas/internal/application/dto"

// PriceRequest precio mínimo válido.
func PriceRequest(unitPrice, netCost string, active bool) dto.PriceRequest {
	req := dto.PriceRequest{UnitPrice: Dec(unitPrice), IsActive: active}
	if netCost != "" {
		req.NetCost = Dec(netCost)
	}
	return req
}
