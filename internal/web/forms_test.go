package web

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

// minimal valid PNG header so content-type sniffing sees an image
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestParseProfileForm_URLEncoded(t *testing.T) {
	body := strings.NewReader("name=John+Doe&department=Engineering")
	req := httptest.NewRequest("POST", "/employee", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, file, err := parseProfileForm(req)
	if err != nil {
		t.Fatalf("parseProfileForm: %v", err)
	}
	if file != nil {
		t.Fatalf("unexpected file: %+v", file)
	}
	if form["name"] != "John Doe" || form["department"] != "Engineering" {
		t.Fatalf("form values: %v", form)
	}
}

func TestParseProfileForm_MultipartWithImage(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "John Doe"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="profileImage"; filename="avatar.png"`)
	hdr.Set("Content-Type", "image/png")
	fw, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(pngHeader); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/employee", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	form, file, err := parseProfileForm(req)
	if err != nil {
		t.Fatalf("parseProfileForm: %v", err)
	}
	if form["name"] != "John Doe" {
		t.Fatalf("form values: %v", form)
	}
	if file == nil {
		t.Fatalf("file missing")
	}
	if !strings.HasPrefix(file.contentType, "image/") {
		t.Fatalf("content type: %q", file.contentType)
	}

	meta := fileMeta(file)
	if meta["profileImage"].Size != int64(len(pngHeader)) {
		t.Fatalf("file size: %+v", meta)
	}
	if file.base64() == "" {
		t.Fatalf("empty base64 payload")
	}
}

func TestParseProfileForm_MultipartWithoutImage(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "John Doe"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/employee", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, file, err := parseProfileForm(req)
	if err != nil {
		t.Fatalf("parseProfileForm: %v", err)
	}
	if file != nil {
		t.Fatalf("unexpected file: %+v", file)
	}
	if fileMeta(nil) != nil {
		t.Fatalf("fileMeta(nil) should be nil")
	}
}
