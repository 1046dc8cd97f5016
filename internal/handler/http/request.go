package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/go-chi/chi/v5"
)

const (
	// maxUploadSize bounds multipart bodies; the validator enforces the
	// actual image limit.
	maxUploadSize = 6 << 20

	uploadFormField = "file"
)

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathParam, name, raw)
	}
	return id, nil
}

func queryUint(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return n, nil
}

// entryFilter builds a filter from ?search=&min_rating=&order_by=&desc=&limit=&offset=.
func entryFilter(r *http.Request, listID int64) (models.EntryFilter, error) {
	query := r.URL.Query()
	filter := models.EntryFilter{
		ListID:  listID,
		Search:  query.Get("search"),
		OrderBy: query.Get("order_by"),
	}

	if raw := query.Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.EntryFilter{}, fmt.Errorf("%w: min_rating=%q", ErrInvalidQueryParam, raw)
		}
		filter.MinRating = &minRating
	}

	if raw := query.Get("desc"); raw != "" {
		desc, err := strconv.ParseBool(raw)
		if err != nil {
			return models.EntryFilter{}, fmt.Errorf("%w: desc=%q", ErrInvalidQueryParam, raw)
		}
		filter.Descending = desc
	}

	var err error
	if filter.Limit, err = queryUint(r, "limit"); err != nil {
		return models.EntryFilter{}, err
	}
	if filter.Offset, err = queryUint(r, "offset"); err != nil {
		return models.EntryFilter{}, err
	}

	return filter, nil
}

// readUpload reads the "file" part of a multipart form. Bucket and owner are
// filled in by the service.
func readUpload(w http.ResponseWriter, r *http.Request) (models.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		return models.Upload{}, fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.Upload{}, fmt.Errorf("%w: %w", ErrInvalidUpload, err)
		}
		return models.Upload{}, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return models.Upload{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// respondError logs err and answers with the status mapped from it. Client
// errors carry the error text; server errors only msg.
func respondError(w http.ResponseWriter, r *http.Request, fn, msg string, err error) {
	status := statusFromError(err)
	logger.FromRequest(r).Err(err).Str("func", fn).Int("status", status).Msg(msg)

	if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	http.Error(w, msg, status)
}
