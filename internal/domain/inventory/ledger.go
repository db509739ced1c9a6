package inventory

import "github.com/jhoicas/pos-ventas/internal/domain/entity"

// NextQuantity aplica un movimiento sobre la cantidad actual.
// IN/RETURN suman, OUT/SALE restan sin bajar de cero y ADJUST fija la cantidad.
// Un tipo desconocido deja la cantidad igual.
func NextQuantity(kind string, before, quantity int) int {
	switch kind {
	case entity.MovementIN, entity.MovementRETURN:
		return before + quantity
	case entity.MovementOUT, entity.MovementSALE:
		if quantity >= before {
			return 0
		}
		return before - quantity
	case entity.MovementADJUST:
		return quantity
	}
	return before
}

// Replay reconstruye la cantidad desde cero aplicando los movimientos en orden.
func Replay(movements []*entity.StockMovement) int {
	qty := 0
	for _, m := range movements {
		qty = NextQuantity(m.Kind, qty, m.Quantity)
	}
	return qty
}

// CheckChain verifica que cada movimiento parta de la cantidad en que terminó el anterior.
// Devuelve el índice del primer eslabón roto o -1.
func CheckChain(movements []*entity.StockMovement) int {
	prev := 0
	for i, m := range movements {
		if m.QuantityBefore != prev || m.QuantityAfter != NextQuantity(m.Kind, m.QuantityBefore, m.Quantity) {
			return i
		}
		prev = m.QuantityAfter
	}
	return -1
}
