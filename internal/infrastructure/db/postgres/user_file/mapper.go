package user_file

import (
	"encoding/json"
	"fmt"

	domain "excel-analytics-api/internal/domain/user_file"
)

func fromDBModel(model *UserFile) (*domain.UserFile, error) {
	var uf = &domain.UserFile{
		UUID:   model.UUID,
		UserID: model.UserID,

		FileName:    model.FileName,
		StoragePath: model.StoragePath,
		MimeType:    model.MimeType,
		Data:        domain.Rows{},

		UploadedAt: model.UploadedAt,
	}
	if model.OwnerEmail != nil {
		uf.OwnerEmail = *model.OwnerEmail
	}
	if len(model.Data) > 0 {
		if err := json.Unmarshal(model.Data, &uf.Data); err != nil {
			return nil, fmt.Errorf("decode data of file %s: %w", model.UUID, err)
		}
	}

	return uf, nil
}

func fromDBModels(models *UserFiles) (domain.UserFiles, error) {
	ufs := make(domain.UserFiles, len(*models))
	for idx, m := range *models {
		uf, err := fromDBModel(m)
		if err != nil {
			return nil, err
		}
		ufs[idx] = uf
	}

	return ufs, nil
}

func encodeData(rows domain.Rows) ([]byte, error) {
	if rows == nil {
		rows = domain.Rows{}
	}
	return json.Marshal(rows)
}
