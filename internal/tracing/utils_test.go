package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailpdf/internal/utils"
)

func TestTraceErr_MarksSpan(t *testing.T) {
	tracer := mocktracer.New()
	span := tracer.StartSpan("op")

	TraceErr(span, errors.New("boom"))
	TraceErr(span, nil)
	TraceErr(nil, errors.New("ignored"))
	span.Finish()

	finished := tracer.FinishedSpans()
	require.Len(t, finished, 1)
	assert.Equal(t, true, finished[0].Tag("error"))
	assert.Len(t, finished[0].Logs(), 1)
}

func TestSetDefaultServiceSpanTags(t *testing.T) {
	tracer := mocktracer.New()
	span := tracer.StartSpan("op")

	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{RequestID: "req-42"})
	ctx = utils.SetFileNameInContext(ctx, "mail.msg")
	SetDefaultServiceSpanTags(ctx, span)
	span.Finish()

	finished := tracer.FinishedSpans()[0]
	assert.Equal(t, "req-42", finished.Tag(SpanTagRequestId))
	assert.Equal(t, "mail.msg", finished.Tag(SpanTagFileName))
	assert.Equal(t, SpanTagComponentService, finished.Tag(SpanTagComponent))
}
