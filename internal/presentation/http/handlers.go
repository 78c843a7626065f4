package http

import (
	"context"
	stdhttp "net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"studylog/app/internal/data/database"
	"studylog/app/internal/domain/catalog"
	"studylog/app/internal/domain/progress"
)

const markdownContentType = "text/markdown; charset=utf-8"

type topicView struct {
	ID    int    `json:"id" doc:"Sequential learning-path position"`
	Slug  string `json:"slug" doc:"Stable identifier derived from the title"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

type createTopicInput struct {
	Body struct {
		Title string `json:"title" minLength:"1" doc:"Human-readable topic heading"`
		Slug  string `json:"slug,omitempty" doc:"Optional slug; derived from the title when empty"`
		Body  string `json:"body,omitempty" doc:"Free-form topic content"`
	}
}

type topicOutput struct {
	Body topicView
}

type topicListOutput struct {
	Body struct {
		Topics []topicView `json:"topics"`
		Count  int         `json:"count"`
	}
}

type topicRefInput struct {
	Ref string `path:"ref" doc:"Topic identifier or slug"`
}

type updateBodyInput struct {
	ID   int `path:"id"`
	Body struct {
		Body string `json:"body" doc:"Replacement topic content"`
	}
}

type topicIDInput struct {
	ID int `path:"id"`
}

type progressView struct {
	TopicID int    `json:"topic_id"`
	Status  string `json:"status" enum:"not-started,in-progress,completed"`
	Note    string `json:"note,omitempty"`
}

type progressOutput struct {
	Body progressView
}

type setProgressInput struct {
	ID   int `path:"id"`
	Body struct {
		Status string `json:"status" doc:"Status word or checklist glyph"`
		Note   string `json:"note,omitempty" doc:"Optional free-text annotation"`
	}
}

type summaryOutput struct {
	Body struct {
		Completed  int `json:"completed"`
		InProgress int `json:"in_progress"`
		NotStarted int `json:"not_started"`
		Total      int `json:"total"`
	}
}

type statusTopicsInput struct {
	Status string `query:"status" doc:"Status word or checklist glyph"`
}

type statusTopicsOutput struct {
	Body struct {
		Status   string `json:"status"`
		TopicIDs []int  `json:"topic_ids"`
	}
}

type checklistOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type healthOutput struct {
	Status int
	Body   struct {
		Status   string `json:"status"`
		Database string `json:"database"`
		Topics   int64  `json:"topics"`
	}
}

func (s *Server) registerTopicRoutes() {
	huma.Post(s.api, "/topics", s.createTopicHandler, func(op *huma.Operation) {
		op.Summary = "Add a topic to the catalog"
		op.DefaultStatus = stdhttp.StatusCreated
	})
	huma.Get(s.api, "/topics", s.listTopicsHandler, func(op *huma.Operation) {
		op.Summary = "List topics in learning order"
	})
	huma.Get(s.api, "/topics/{ref}", s.getTopicHandler, func(op *huma.Operation) {
		op.Summary = "Fetch a topic by identifier or slug"
	})
	huma.Put(s.api, "/topics/{id}/body", s.updateBodyHandler, func(op *huma.Operation) {
		op.Summary = "Rewrite a topic body"
	})
}

func (s *Server) registerProgressRoutes() {
	huma.Get(s.api, "/topics/{id}/progress", s.getProgressHandler, func(op *huma.Operation) {
		op.Summary = "Fetch the completion status of a topic"
	})
	huma.Put(s.api, "/topics/{id}/progress", s.setProgressHandler, func(op *huma.Operation) {
		op.Summary = "Set the completion status of a topic"
	})
	huma.Get(s.api, "/progress/summary", s.summaryHandler, func(op *huma.Operation) {
		op.Summary = "Aggregate status counts across the catalog"
	})
	huma.Get(s.api, "/progress/topics", s.topicsWithStatusHandler, func(op *huma.Operation) {
		op.Summary = "List topics currently in a given status"
	})
}

func (s *Server) registerChecklistRoute() {
	huma.Get(s.api, "/checklist", s.checklistHandler, func(op *huma.Operation) {
		op.Summary = "Render the catalog and ledger as a markdown checklist"
	})
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) createTopicHandler(ctx context.Context, input *createTopicInput) (*topicOutput, error) {
	topic, err := s.catalog.AddTopic(ctx, input.Body.Title, input.Body.Slug, input.Body.Body)
	if err != nil {
		s.recordError(ctx, err, "adding topic", logrus.Fields{"slug": input.Body.Slug})
		return nil, classifyError(err)
	}

	return &topicOutput{Body: toTopicView(topic, true)}, nil
}

func (s *Server) listTopicsHandler(ctx context.Context, _ *struct{}) (*topicListOutput, error) {
	topics, err := s.catalog.ListTopics(ctx)
	if err != nil {
		s.recordError(ctx, err, "listing topics", nil)
		return nil, classifyError(err)
	}

	resp := &topicListOutput{}
	resp.Body.Topics = make([]topicView, 0, len(topics))
	for idx := range topics {
		resp.Body.Topics = append(resp.Body.Topics, toTopicView(&topics[idx], false))
	}
	resp.Body.Count = len(topics)

	return resp, nil
}

func (s *Server) getTopicHandler(ctx context.Context, input *topicRefInput) (*topicOutput, error) {
	topic, err := s.catalog.GetTopic(ctx, input.Ref)
	if err != nil {
		s.recordError(ctx, err, "fetching topic", logrus.Fields{"ref": input.Ref})
		return nil, classifyError(err)
	}

	return &topicOutput{Body: toTopicView(topic, true)}, nil
}

func (s *Server) updateBodyHandler(ctx context.Context, input *updateBodyInput) (*topicOutput, error) {
	if err := s.catalog.UpdateBody(ctx, input.ID, input.Body.Body); err != nil {
		s.recordError(ctx, err, "updating topic body", logrus.Fields{"topic_id": input.ID})
		return nil, classifyError(err)
	}

	topic, err := s.catalog.GetTopic(ctx, strconv.Itoa(input.ID))
	if err != nil {
		s.recordError(ctx, err, "reloading topic after update", logrus.Fields{"topic_id": input.ID})
		return nil, classifyError(err)
	}

	return &topicOutput{Body: toTopicView(topic, true)}, nil
}

func (s *Server) getProgressHandler(ctx context.Context, input *topicIDInput) (*progressOutput, error) {
	entry, err := s.ledger.GetStatus(ctx, input.ID)
	if err != nil {
		s.recordError(ctx, err, "fetching topic status", logrus.Fields{"topic_id": input.ID})
		return nil, classifyError(err)
	}

	return &progressOutput{Body: toProgressView(entry)}, nil
}

func (s *Server) setProgressHandler(ctx context.Context, input *setProgressInput) (*progressOutput, error) {
	status, err := progress.ParseStatus(input.Body.Status)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("unrecognised status", err)
	}

	if err := s.ledger.SetStatus(ctx, input.ID, status, input.Body.Note); err != nil {
		s.recordError(ctx, err, "setting topic status", logrus.Fields{"topic_id": input.ID, "status": status})
		return nil, classifyError(err)
	}

	entry, err := s.ledger.GetStatus(ctx, input.ID)
	if err != nil {
		s.recordError(ctx, err, "reloading topic status", logrus.Fields{"topic_id": input.ID})
		return nil, classifyError(err)
	}

	return &progressOutput{Body: toProgressView(entry)}, nil
}

func (s *Server) summaryHandler(ctx context.Context, _ *struct{}) (*summaryOutput, error) {
	counts, err := s.ledger.Summary(ctx)
	if err != nil {
		s.recordError(ctx, err, "aggregating progress summary", nil)
		return nil, classifyError(err)
	}

	resp := &summaryOutput{}
	resp.Body.Completed = counts[progress.StatusCompleted]
	resp.Body.InProgress = counts[progress.StatusInProgress]
	resp.Body.NotStarted = counts[progress.StatusNotStarted]
	resp.Body.Total = resp.Body.Completed + resp.Body.InProgress + resp.Body.NotStarted

	return resp, nil
}

func (s *Server) topicsWithStatusHandler(ctx context.Context, input *statusTopicsInput) (*statusTopicsOutput, error) {
	status, err := progress.ParseStatus(input.Status)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("unrecognised status", err)
	}

	ids, err := s.ledger.TopicsWithStatus(ctx, status)
	if err != nil {
		s.recordError(ctx, err, "listing topics by status", logrus.Fields{"status": status})
		return nil, classifyError(err)
	}

	resp := &statusTopicsOutput{}
	resp.Body.Status = string(status)
	resp.Body.TopicIDs = ids

	return resp, nil
}

func (s *Server) checklistHandler(ctx context.Context, _ *struct{}) (*checklistOutput, error) {
	rendered, err := s.checklist.Checklist(ctx)
	if err != nil {
		s.recordError(ctx, err, "rendering checklist", nil)
		return nil, classifyError(err)
	}

	return &checklistOutput{
		ContentType: markdownContentType,
		Body:        []byte(rendered),
	}, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthOutput, error) {
	resp := &healthOutput{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"

	sqlDB, err := database.SQLDB(s.db)
	if err != nil {
		s.recordError(ctx, err, "obtaining sql db", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		s.recordError(ctx, pingErr, "pinging database", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if resp.Status != stdhttp.StatusServiceUnavailable {
		count, countErr := s.catalog.CountTopics(ctx)
		if countErr != nil {
			s.recordError(ctx, countErr, "counting topics for health check", nil)
		} else {
			resp.Body.Topics = count
		}
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}

func toTopicView(topic *catalog.Topic, includeBody bool) topicView {
	view := topicView{
		ID:    topic.ID,
		Slug:  topic.Slug,
		Title: topic.Title,
	}
	if includeBody {
		view.Body = topic.Body
	}
	return view
}

func toProgressView(entry *progress.Entry) progressView {
	return progressView{
		TopicID: entry.TopicID,
		Status:  string(entry.Status),
		Note:    entry.Note,
	}
}

func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case eris.Is(err, catalog.ErrDuplicateSlug):
		return huma.Error409Conflict("a topic with that slug already exists")
	case eris.Is(err, catalog.ErrTopicNotFound):
		return huma.Error404NotFound("no such topic in the catalog")
	case eris.Is(err, progress.ErrUnknownTopic):
		return huma.Error404NotFound("no such topic in the catalog")
	default:
		cause := strings.ToLower(eris.Cause(err).Error())
		if strings.Contains(cause, "is required") || strings.Contains(cause, "invalid") {
			return huma.Error422UnprocessableEntity(eris.Cause(err).Error())
		}
		return huma.Error500InternalServerError("we couldn't process your request right now")
	}
}
