package directory

import (
	domain "filetag-api/internal/domain/directory"
)

func fromDBModel(model *Directory) *domain.Directory {
	var d = &domain.Directory{
		DirectoryID:    model.DirectoryID,
		SessionID:      model.SessionID,
		OwnerUserID:    model.OwnerUserID,
		PhysicalPath:   model.PhysicalPath,
		UsageType:      model.UsageType,
		LimitedSize:    model.LimitedSize,
		PublicUpload:   model.PublicUpload,
		PublicDownload: model.PublicDownload,
		IsEnabled:      model.IsEnabled,

		CreatedDate: model.CreatedDate,
	}

	return d
}

func fromDBModels(models *Directories) domain.Directories {
	ds := make(domain.Directories, len(*models))
	for idx, d := range *models {
		ds[idx] = fromDBModel(d)
	}

	return ds
}
