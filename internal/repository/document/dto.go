package document

import (
	"encoding/json"
	"fmt"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/bulk"
)

// bulkResponse mirrors the engine's bulk response envelope. Each item is a
// single-key object keyed by the action name ("index" here).
type bulkResponse struct {
	Errors bool                     `json:"errors"`
	Items  []map[string]bulkItemDTO `json:"items"`
}

type bulkItemDTO struct {
	ID     string        `json:"_id"`
	Status int           `json:"status"`
	Error  *bulkErrorDTO `json:"error"`
}

type bulkErrorDTO struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// decodeBulk parses the bulk response into per-document outcomes. The item
// count must match the submitted document count; anything else means the
// response cannot be trusted and decoding fails closed.
func decodeBulk(raw []byte, want int) (bulk.Outcome, error) {
	var resp bulkResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return bulk.Outcome{}, &domain.DecodeError{Path: "items", Cause: err}
	}
	if resp.Items == nil {
		return bulk.Outcome{}, domain.NewDecodeError("items")
	}
	if len(resp.Items) != want {
		return bulk.Outcome{}, &domain.DecodeError{
			Path:  "items",
			Cause: fmt.Errorf("expected %d items, got %d", want, len(resp.Items)),
		}
	}

	results := make([]bulk.Result, 0, len(resp.Items))
	for i, item := range resp.Items {
		dto, err := itemDTO(item, i)
		if err != nil {
			return bulk.Outcome{}, err
		}
		results = append(results, itemResult(dto))
	}
	return bulk.NewOutcome(resp.Errors, results), nil
}

// itemDTO unwraps the single action entry of a bulk item.
func itemDTO(item map[string]bulkItemDTO, i int) (bulkItemDTO, error) {
	for _, dto := range item {
		return dto, nil
	}
	return bulkItemDTO{}, domain.NewDecodeError(fmt.Sprintf("items[%d]", i))
}

func itemResult(dto bulkItemDTO) bulk.Result {
	if dto.Status >= 200 && dto.Status < 300 {
		return bulk.NewAccepted(dto.ID)
	}
	reason := fmt.Sprintf("status %d", dto.Status)
	if dto.Error != nil && dto.Error.Type != "" {
		reason = dto.Error.Type
		if dto.Error.Reason != "" {
			reason = dto.Error.Type + ": " + dto.Error.Reason
		}
	}
	return bulk.NewRejected(dto.ID, reason)
}
