package editor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/yaml.v3"

	"github.com/Badsnus/qr-styler/cmd/bot"
	"github.com/Badsnus/qr-styler/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-styler/internal/adapters/database/redis/states"
	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/internal/domain/service"
	"github.com/Badsnus/qr-styler/pkg/logger/types"
	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

const (
	stateAwaitField = "await_field"
	maxUploadBytes  = 256 << 10
)

type formService interface {
	Get(ctx context.Context, userID int64) (qrstyle.FormState, error)
	Reset(ctx context.Context, userID int64) (qrstyle.FormState, error)
	ApplyPreset(ctx context.Context, userID int64, name string) (qrstyle.FormState, error)
	SetField(ctx context.Context, userID int64, path, value string) (qrstyle.FormState, error)
	Replace(ctx context.Context, userID int64, state qrstyle.FormState) error
}

type presetService interface {
	List(ctx context.Context, ownerID int64) ([]qrstyle.Preset, error)
	Save(ctx context.Context, ownerID int64, name, description string, state qrstyle.FormState) (qrstyle.Preset, error)
	Overwrite(ctx context.Context, ownerID int64, name, description string, state qrstyle.FormState) (qrstyle.Preset, error)
	Delete(ctx context.Context, ownerID int64, name string) error
}

type qrService interface {
	Render(ctx context.Context, state qrstyle.FormState) (*qr.Result, error)
}

type stateStorage interface {
	Get(ctx context.Context, userID int64) (states.State, error)
	Set(ctx context.Context, userID int64, state string, stateContext string, expiration time.Duration) error
	Clear(ctx context.Context, userID int64) error
}

type callbackStorage interface {
	Get(ctx context.Context, callbackID string) (string, error)
	Set(ctx context.Context, data string, expiration time.Duration) (string, error)
}

// texts is satisfied by *layout.Layout.
type texts interface {
	Text(c tele.Context, k string, args ...interface{}) string
}

type Handler struct {
	layout        texts
	formService   formService
	presetService presetService
	qrService     qrService
	states        stateStorage
	callbacks     callbackStorage
	logger        *types.Logger
	awaitTTL      time.Duration
}

func New(b *bot.Bot) *Handler {
	var presetStorage service.PresetStorage
	if b.DB != nil {
		presetStorage = postgres.NewPresetStorage(b.DB)
	}
	presets := service.NewPresetService(presetStorage, viper.GetInt("qr.max-presets"))

	return &Handler{
		layout:        b.Layout,
		formService:   service.NewFormService(b.Redis.Forms, presets, b.Defaults, viper.GetDuration("qr.session-ttl")),
		presetService: presets,
		qrService:     service.NewQrService(b.Renderer, b.Metrics, b.Logger),
		states:        b.Redis.States,
		callbacks:     b.Redis.Callbacks,
		logger:        b.Logger,
		awaitTTL:      15 * time.Minute,
	}
}

func (h *Handler) technicalIssue(c tele.Context, err error) error {
	h.logger.Errorf("(user: %d) %v", c.Sender().ID, err)
	return c.Send(h.layout.Text(c, "technical_issues", err.Error()))
}

// userError answers with the message of errors caused by user input and
// reports everything else as a technical issue.
func (h *Handler) userError(c tele.Context, err error) error {
	var fieldErr *qrstyle.FieldError
	switch {
	case errors.As(err, &fieldErr),
		errors.Is(err, qrstyle.ErrUnknownValue),
		errors.Is(err, qr.ErrCapacity),
		errors.Is(err, qr.ErrImage),
		errors.Is(err, errorz.ErrPresetNotFound),
		errors.Is(err, errorz.ErrPresetExists),
		errors.Is(err, errorz.ErrInvalidPresetName),
		errors.Is(err, errorz.ErrPresetLimit):
		return c.Send(h.layout.Text(c, "user_error", err.Error()))
	case errors.Is(err, errorz.ErrForbidden):
		return c.Send(h.layout.Text(c, "forbidden"))
	}
	return h.technicalIssue(c, err)
}

func (h *Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) press start button", c.Sender().ID)
	_ = h.states.Clear(context.Background(), c.Sender().ID)
	return c.Send(h.layout.Text(c, "start"))
}

func (h *Handler) Presets(c tele.Context) error {
	presets, err := h.presetService.List(context.Background(), c.Sender().ID)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	markup, err := presetMarkup(presets, func(name string) (string, error) {
		if data, ok := inlinePresetData(name); ok {
			return data, nil
		}
		id, err := h.callbacks.Set(context.Background(), name, h.awaitTTL)
		if err != nil {
			return "", err
		}
		return presetDataStore + id, nil
	})
	if err != nil {
		return h.technicalIssue(c, err)
	}
	return c.Send(h.layout.Text(c, "pick_preset"), markup)
}

// Preset applies the preset named in the command payload.
func (h *Handler) Preset(c tele.Context) error {
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return h.Presets(c)
	}
	return h.applyPreset(c, name)
}

// OnPresetButton handles a press on one of the preset buttons.
func (h *Handler) OnPresetButton(c tele.Context) error {
	name, storedID, ok := parsePresetData(c.Callback().Data)
	if !ok {
		return h.technicalIssue(c, errorz.ErrInvalidCallbackData)
	}
	if storedID != "" {
		var err error
		name, err = h.callbacks.Get(context.Background(), storedID)
		if errors.Is(err, errorz.ErrInvalidCallbackData) {
			return c.Send(h.layout.Text(c, "button_expired"))
		}
		if err != nil {
			return h.technicalIssue(c, err)
		}
	}
	return h.applyPreset(c, name)
}

func (h *Handler) applyPreset(c tele.Context, name string) error {
	h.logger.Infof("(user: %d) apply preset %q", c.Sender().ID, name)
	state, err := h.formService.ApplyPreset(context.Background(), c.Sender().ID, name)
	if err != nil {
		return h.userError(c, err)
	}
	return c.Send(h.layout.Text(c, "preset_applied", struct {
		Name    string
		Summary summaryView
	}{name, summary(state)}))
}

// Set handles "/set <field> <value>". Without a value the next text message
// becomes the value.
func (h *Handler) Set(c tele.Context) error {
	field, value, ok := parseSetArgs(c.Message().Payload)
	if field == "" {
		return c.Send(h.layout.Text(c, "set_usage"))
	}
	if !ok {
		if !isField(field) {
			return c.Send(h.layout.Text(c, "user_error", field+": "+qrstyle.ErrUnknownField.Error()))
		}
		if err := h.states.Set(context.Background(), c.Sender().ID, stateAwaitField, field, h.awaitTTL); err != nil {
			return h.technicalIssue(c, err)
		}
		return c.Send(h.layout.Text(c, "await_value", field))
	}
	return h.setField(c, field, value)
}

func (h *Handler) setField(c tele.Context, field, value string) error {
	state, err := h.formService.SetField(context.Background(), c.Sender().ID, field, value)
	if err != nil {
		return h.userError(c, err)
	}
	return c.Send(h.layout.Text(c, "field_set", struct {
		Field   string
		Summary summaryView
	}{field, summary(state)}))
}

// OnText fills an awaited field or, by default, replaces the encoded data.
func (h *Handler) OnText(c tele.Context) error {
	ctx := context.Background()
	st, err := h.states.Get(ctx, c.Sender().ID)
	if err != nil && !errors.Is(err, errorz.ErrInvalidState) {
		return h.technicalIssue(c, err)
	}
	_ = h.states.Clear(ctx, c.Sender().ID)

	if st.State == stateAwaitField && st.StateContext != "" {
		return h.setField(c, st.StateContext, c.Text())
	}
	return h.setField(c, "data", c.Text())
}

// OnDocument replaces the whole form with an uploaded JSON or YAML file.
func (h *Handler) OnDocument(c tele.Context) error {
	doc := c.Message().Document
	switch strings.ToLower(path.Ext(doc.FileName)) {
	case ".json", ".yaml", ".yml":
	default:
		return c.Send(h.layout.Text(c, "upload_format"))
	}
	if doc.FileSize > maxUploadBytes {
		return c.Send(h.layout.Text(c, "upload_too_large"))
	}

	rc, err := c.Bot().File(&doc.File)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(io.LimitReader(rc, maxUploadBytes))
	if err != nil {
		return h.technicalIssue(c, err)
	}

	ctx := context.Background()
	state, err := h.formService.Get(ctx, c.Sender().ID)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	if err = decodeForm(raw, &state); err != nil {
		return c.Send(h.layout.Text(c, "user_error", err.Error()))
	}
	if err = h.formService.Replace(ctx, c.Sender().ID, state); err != nil {
		return h.userError(c, err)
	}
	return c.Send(h.layout.Text(c, "form_replaced", summary(state)))
}

func (h *Handler) Fields(c tele.Context) error {
	return c.Send(h.layout.Text(c, "fields", qrstyle.FieldPaths()))
}

func (h *Handler) Show(c tele.Context) error {
	state, err := h.formService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	out, err := yaml.Marshal(state)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	return c.Send(h.layout.Text(c, "show", string(out)))
}

func (h *Handler) Render(c tele.Context) error {
	ctx := context.Background()
	state, err := h.formService.Get(ctx, c.Sender().ID)
	if err != nil {
		return h.technicalIssue(c, err)
	}

	h.logger.Infof("(user: %d) render %s %dx%d", c.Sender().ID, state.Type, state.Width, state.Height)
	_ = c.Notify(tele.UploadingPhoto)
	res, err := h.qrService.Render(ctx, state)
	if err != nil {
		return h.userError(c, err)
	}

	file := tele.FromReader(bytes.NewReader(res.Data))
	caption := h.layout.Text(c, "rendered", res.Version)
	if res.Extension == "png" {
		return c.Send(&tele.Photo{File: file, Caption: caption})
	}
	return c.Send(&tele.Document{
		File:     file,
		FileName: "qr." + res.Extension,
		MIME:     res.ContentType,
		Caption:  caption,
	})
}

func (h *Handler) Reset(c tele.Context) error {
	ctx := context.Background()
	_ = h.states.Clear(ctx, c.Sender().ID)
	state, err := h.formService.Reset(ctx, c.Sender().ID)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	return c.Send(h.layout.Text(c, "reset", summary(state)))
}

// Save stores the form as "/save <name> [description]".
func (h *Handler) Save(c tele.Context) error {
	name, description, _ := strings.Cut(strings.TrimSpace(c.Message().Payload), " ")
	if name == "" {
		return c.Send(h.layout.Text(c, "save_usage"))
	}

	ctx := context.Background()
	state, err := h.formService.Get(ctx, c.Sender().ID)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	p, err := h.presetService.Save(ctx, c.Sender().ID, name, description, state)
	if err != nil {
		return h.userError(c, err)
	}
	h.logger.Infof("(user: %d) saved preset %q", c.Sender().ID, p.Name)
	return c.Send(h.layout.Text(c, "saved", p.Name))
}

// Overwrite replaces a saved preset with the form, "/overwrite <name> [description]".
func (h *Handler) Overwrite(c tele.Context) error {
	name, description, _ := strings.Cut(strings.TrimSpace(c.Message().Payload), " ")
	if name == "" {
		return c.Send(h.layout.Text(c, "overwrite_usage"))
	}

	ctx := context.Background()
	state, err := h.formService.Get(ctx, c.Sender().ID)
	if err != nil {
		return h.technicalIssue(c, err)
	}
	p, err := h.presetService.Overwrite(ctx, c.Sender().ID, name, description, state)
	if err != nil {
		return h.userError(c, err)
	}
	h.logger.Infof("(user: %d) overwrote preset %q", c.Sender().ID, p.Name)
	return c.Send(h.layout.Text(c, "overwritten", p.Name))
}

func (h *Handler) Delete(c tele.Context) error {
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send(h.layout.Text(c, "delete_usage"))
	}
	if err := h.presetService.Delete(context.Background(), c.Sender().ID, name); err != nil {
		return h.userError(c, err)
	}
	return c.Send(h.layout.Text(c, "deleted", name))
}
