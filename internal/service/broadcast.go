package service

import (
	"encoding/json"
	"fmt"

	"go-warehouse-ledger/internal/model"

	"go.uber.org/zap"
)

func (s *inventoryService) broadcast(action string, p *model.Product, tx *model.Transaction) {
	if s.publisher == nil {
		return
	}

	verb := "received"
	if tx.Type == model.TxExport {
		verb = "issued"
	}

	payload := map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"id":       p.ID,
			"code":     p.Code,
			"name":     p.Name,
			"quantity": p.Quantity,
			"low":      p.IsLowStock(),
		},
		"transaction": map[string]interface{}{
			"id":       tx.ID,
			"type":     tx.Type,
			"quantity": tx.Quantity,
			"partner":  tx.Partner,
		},
		"message": fmt.Sprintf("%s %d %s of '%s'", verb, tx.Quantity, p.Unit, p.Name),
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("encode stock update", zap.Error(err))
		return
	}
	s.publisher.Publish(msg)
}
