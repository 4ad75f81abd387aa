package shortcut

import (
	domain "filetag-api/internal/domain/shortcut"
)

func fromDBModel(model *Shortcut) *domain.Shortcut {
	var sc = &domain.Shortcut{
		ShortcutKey:   model.ShortcutKey,
		OwnerUserID:   model.OwnerUserID,
		OriginalName:  model.OriginalName,
		Destination:   model.Destination,
		ContentType:   model.ContentType,
		ContentLength: model.ContentLength,
		SessionID:     model.SessionID,

		CreatedDate: model.CreatedDate,
	}

	return sc
}

func fromDBModels(models *Shortcuts) domain.Shortcuts {
	scs := make(domain.Shortcuts, len(*models))
	for idx, sc := range *models {
		scs[idx] = fromDBModel(sc)
	}

	return scs
}
