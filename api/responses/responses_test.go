package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func TestWritePaginatedEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WritePaginated(rec, []string{"a", "b"}, types.Pagination{
		CurrentPage: 2, LastPage: 4, PerPage: 15, Total: 47,
	})

	var body struct {
		Data       []string         `json:"data"`
		Pagination types.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 2 {
		t.Errorf("got %d items", len(body.Data))
	}
	if body.Pagination.CurrentPage != 2 || body.Pagination.LastPage != 4 || body.Pagination.Total != 47 {
		t.Errorf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code   pkgerrors.Code
		status int
	}{
		{pkgerrors.CodeBadRequest, 400},
		{pkgerrors.CodeUnauthorized, 401},
		{pkgerrors.CodeForbidden, 403},
		{pkgerrors.CodeNotFound, 404},
		{pkgerrors.CodeGone, 410},
		{pkgerrors.CodeValidation, 422},
		{pkgerrors.CodeConflict, 422},
		{pkgerrors.CodeDependency, 503},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), testLogger(), rec, pkgerrors.New(tc.code, "boom"))
		if rec.Code != tc.status {
			t.Errorf("%s: got %d, want %d", tc.code, rec.Code, tc.status)
		}
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, pkgerrors.New(pkgerrors.CodeInternal, "pg password leaked"))

	var body types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message != "internal server error" {
		t.Errorf("internal message leaked: %q", body.Error.Message)
	}
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, context.DeadlineExceeded)
	if rec.Code != 500 {
		t.Errorf("got %d, want 500", rec.Code)
	}
}
