// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/alloyforge/internal/alloy"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/platform/respond"
)

// NewBatchHandler serves the report of the startup batch. A nil report means
// the batch has not produced one and yields 404.
func NewBatchHandler(report *alloy.Report) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if report == nil {
			respond.Error(writer, request, apperr.NotFound("Batch report"))
			return
		}
		respond.OK(writer, report)
	}
}
