package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mediquiz/internal/errors"
	"github.com/vytor/mediquiz/internal/models"
	"github.com/vytor/mediquiz/internal/services"
	"github.com/vytor/mediquiz/internal/testutil/mocks"
)

func TestSummaryService_BuildOutline_JoinsLectures(t *testing.T) {
	gen := new(mocks.MockGenerator)
	outline := models.Outline{{MainTopic: "간염"}}
	gen.On("Outline", mock.Anything, "강의 1\n\n강의 2", "").Return(outline, nil)
	svc := services.NewSummaryService(gen)

	got, err := svc.BuildOutline(context.Background(), []services.Upload{
		upload("l1.txt", "강의 1"),
		upload("empty.txt", ""),
		upload("l2.txt", "강의 2"),
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, outline, got)
	gen.AssertExpectations(t)
}

func TestSummaryService_BuildOutline_Validation(t *testing.T) {
	gen := new(mocks.MockGenerator)
	svc := services.NewSummaryService(gen)

	_, err := svc.BuildOutline(context.Background(), nil, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.BuildOutline(context.Background(), []services.Upload{upload("l.txt", " ")}, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.BuildOutline(context.Background(), []services.Upload{upload("l.xlsx", "x")}, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	gen.AssertNotCalled(t, "Outline", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryService_RenderDocument(t *testing.T) {
	svc := services.NewSummaryService(new(mocks.MockGenerator))

	data, err := svc.RenderDocument(context.Background(), models.Outline{{
		MainTopic:   "급성 A형 간염",
		SubSections: []models.SubSection{{Key: "진단", Value: "1. IgM <yellow>양성</yellow>"}},
	}})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "word/document.xml")

	_, err = svc.RenderDocument(context.Background(), nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
