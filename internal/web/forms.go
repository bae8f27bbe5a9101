package web

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/garnizeh/emsportal/internal/validate"
)

// profileFields are the text inputs shared by the register and profile
// forms.
var profileFields = []string{
	"name", "designation", "address", "department",
	"joiningDate", "skillset", "username", "password", "confirmPassword",
	"status",
}

type uploadedFile struct {
	data        []byte
	contentType string
}

func (f *uploadedFile) base64() string {
	return base64.StdEncoding.EncodeToString(f.data)
}

// parseProfileForm reads either a multipart or urlencoded form, returning
// the text fields and the optional profile image upload.
func parseProfileForm(r *http.Request) (map[string]string, *uploadedFile, error) {
	var file *uploadedFile

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(validate.MaxImageBytes + 1<<20); err != nil {
			return nil, nil, err
		}

		if f, hdr, err := r.FormFile("profileImage"); err == nil {
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				return nil, nil, err
			}
			contentType := hdr.Header.Get("Content-Type")
			if contentType == "" {
				contentType = http.DetectContentType(data)
			}
			file = &uploadedFile{data: data, contentType: contentType}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, nil, err
		}
	}

	form := make(map[string]string, len(profileFields))
	for _, f := range profileFields {
		form[f] = r.PostFormValue(f)
	}
	return form, file, nil
}

// fileMeta adapts an upload for the validation rules; size is the decoded
// byte count, not the base64 length.
func fileMeta(f *uploadedFile) map[string]validate.FileMeta {
	if f == nil {
		return nil
	}
	return map[string]validate.FileMeta{
		"profileImage": {ContentType: f.contentType, Size: int64(len(f.data))},
	}
}
