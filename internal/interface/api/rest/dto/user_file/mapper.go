package user_file

import (
	"excel-analytics-api/internal/domain/user_file"
)

func ToResponseUserFile(uDomain user_file.UserFile) UserFile {
	data := uDomain.Data
	if data == nil {
		data = user_file.Rows{}
	}

	return UserFile{
		UUID:       uDomain.UUID,
		UserID:     uDomain.UserID,
		OwnerEmail: uDomain.OwnerEmail,
		FileName:   uDomain.FileName,
		MimeType:   uDomain.MimeType,
		Data:       data,
		UploadedAt: uDomain.UploadedAt,
	}
}

func ToResponseUserFiles(ufDomain user_file.UserFiles) UserFiles {
	ufs := make(UserFiles, len(ufDomain))
	for idx, u := range ufDomain {
		ufs[idx] = ToResponseUserFile(*u)
	}

	return ufs
}
