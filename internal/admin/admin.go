package admin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"go.uber.org/zap"

	"audimew-storefront/internal/model"
	"audimew-storefront/internal/session"
)

// ModifyForm is the product editor form.
type ModifyForm struct {
	Pname    string `json:"pname" form:"pname"`
	Price    string `json:"price" form:"price"`
	Pdesc    string `json:"pdesc" form:"pdesc"`
	Pstock   int    `json:"pstock" form:"pstock"`
	Category string `json:"category" form:"category"`

	// CurrentFile is the image kept when no new file is uploaded.
	CurrentFile string `json:"currentFile" form:"currentFile"`
}

// FormFromProduct pre-fills the editor from a stored product.
func FormFromProduct(p model.Product) ModifyForm {
	f := ModifyForm{
		Pname:    p.Pname,
		Price:    string(p.Price),
		Pdesc:    p.Pdesc,
		Pstock:   max(p.Pstock, 0),
		Category: p.Category,
	}
	if len(p.UploadFileNames) > 0 {
		f.CurrentFile = p.UploadFileNames[0]
	}
	return f
}

// Upload is a replacement image picked in the editor.
type Upload struct {
	Filename string
	Body     io.Reader
}

// Multipart encodes the form the way the modify endpoint expects it. A new
// upload is sent as files; otherwise the current image name is sent back as
// uploadFileNames.
func (f ModifyForm) Multipart(pno int64, file *Upload) (io.Reader, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := [][2]string{
		{"pno", strconv.FormatInt(pno, 10)},
		{"pname", f.Pname},
		{"price", f.Price},
		{"pdesc", f.Pdesc},
		{"pstock", strconv.Itoa(f.Pstock)},
		{"category", f.Category},
	}
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", kv[0], err)
		}
	}

	switch {
	case file != nil:
		part, err := w.CreateFormFile("files", file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file.Body); err != nil {
			return nil, "", fmt.Errorf("failed to copy upload: %w", err)
		}
	case f.CurrentFile != "":
		if err := w.WriteField("uploadFileNames", f.CurrentFile); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", "uploadFileNames", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &body, w.FormDataContentType(), nil
}

// Backend is the admin part of the storefront API.
type Backend interface {
	AdminProduct(ctx context.Context, token string, pno int64) (*model.Product, error)
	ModifyProduct(ctx context.Context, token string, form io.Reader, contentType string) (string, error)
}

// Service loads and saves products for administrators.
type Service struct {
	backend Backend
	log     *zap.Logger
}

// NewService creates an admin service.
func NewService(backend Backend, log *zap.Logger) *Service {
	return &Service{backend: backend, log: log}
}

// Load returns the stored product and its pre-filled form.
func (s *Service) Load(ctx context.Context, sess *session.Session, pno int64) (*model.Product, ModifyForm, error) {
	if err := session.AuthorizeAdmin(sess); err != nil {
		return nil, ModifyForm{}, err
	}
	p, err := s.backend.AdminProduct(ctx, sess.AccessToken(), pno)
	if err != nil {
		return nil, ModifyForm{}, fmt.Errorf("load product %d: %w", pno, err)
	}
	return p, FormFromProduct(*p), nil
}

// Modify submits the edited form and returns the backend message.
func (s *Service) Modify(ctx context.Context, sess *session.Session, pno int64, form ModifyForm, file *Upload) (string, error) {
	if err := session.AuthorizeAdmin(sess); err != nil {
		return "", err
	}

	body, contentType, err := form.Multipart(pno, file)
	if err != nil {
		return "", err
	}
	msg, err := s.backend.ModifyProduct(ctx, sess.AccessToken(), body, contentType)
	if err != nil {
		s.log.Error("failed to modify product", zap.Int64("pno", pno), zap.Error(err))
		return "", fmt.Errorf("modify product %d: %w", pno, err)
	}
	s.log.Info("product modified", zap.Int64("pno", pno), zap.String("admin", sess.User().UserID))
	return msg, nil
}
