package history

import (
	"encoding/json"

	domain "excel-analytics-api/internal/domain/history"
)

func fromDBModel(model *Entry) *domain.Entry {
	e := &domain.Entry{
		UUID:      model.UUID,
		UserID:    model.UserID,
		Action:    model.Action,
		CreatedAt: model.CreatedAt,
	}
	if len(model.Details) > 0 {
		e.Details = json.RawMessage(model.Details)
	}

	return e
}

func fromDBModels(models *Entries) domain.Entries {
	es := make(domain.Entries, len(*models))
	for idx, e := range *models {
		es[idx] = fromDBModel(e)
	}

	return es
}
