// Package http provides the message endpoint: one POST route that dispatches
// typed messages to the vault, code generation, OAuth and project use cases and
// answers with {success, ...} payloads.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	codegenUseCase "github.com/utenadev/gca4g/internal/codegen/usecase"
	apperrors "github.com/utenadev/gca4g/internal/errors"
	"github.com/utenadev/gca4g/internal/httputil"
	"github.com/utenadev/gca4g/internal/message/http/dto"
	oauthUseCase "github.com/utenadev/gca4g/internal/oauth/usecase"
	projectUseCase "github.com/utenadev/gca4g/internal/project/usecase"
	"github.com/utenadev/gca4g/internal/reconcile"
	customValidation "github.com/utenadev/gca4g/internal/validation"
	vaultUseCase "github.com/utenadev/gca4g/internal/vault/usecase"
)

// ErrUnknownMessageType indicates a message whose type has no handler.
var ErrUnknownMessageType = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown message type")

type messageFunc func(c *gin.Context, req *dto.MessageRequest) (gin.H, error)

// MessageHandler handles POST /v1/messages.
type MessageHandler struct {
	vaultUseCase   vaultUseCase.VaultUseCase
	codeGenUseCase codegenUseCase.CodeGenUseCase
	oauthUseCase   oauthUseCase.OAuthUseCase
	projectUseCase projectUseCase.ProjectUseCase
	logger         *slog.Logger
	routes         map[string]messageFunc
}

// NewMessageHandler creates a message handler with required dependencies.
func NewMessageHandler(
	vaultUseCase vaultUseCase.VaultUseCase,
	codeGenUseCase codegenUseCase.CodeGenUseCase,
	oauthUseCase oauthUseCase.OAuthUseCase,
	projectUseCase projectUseCase.ProjectUseCase,
	logger *slog.Logger,
) *MessageHandler {
	h := &MessageHandler{
		vaultUseCase:   vaultUseCase,
		codeGenUseCase: codeGenUseCase,
		oauthUseCase:   oauthUseCase,
		projectUseCase: projectUseCase,
		logger:         logger,
	}
	h.routes = map[string]messageFunc{
		dto.TypeSetMasterPassword:       h.setMasterPassword,
		dto.TypeGetMasterPasswordStatus: h.masterPasswordStatus,
		dto.TypeClearMasterPassword:     h.clearMasterPassword,
		dto.TypeSaveAPIKey:              h.saveAPIKey,
		dto.TypeGetAPIKey:               h.getAPIKey,
		dto.TypeGenerateCode:            h.generateCode,
		dto.TypePullProject:             h.pullProject,
		dto.TypePushProject:             h.pushProject,
		dto.TypeSetProjectID:            h.setProjectID,
		dto.TypeAuthenticateGAS:         h.authenticate,
		dto.TypeMergeUpdates:            h.mergeUpdates,
		dto.TypeApplyUpdates:            h.applyUpdates,
	}
	return h
}

// Handle decodes a message, dispatches it by type and writes the result.
// POST /v1/messages
func (h *MessageHandler) Handle(c *gin.Context) {
	var req dto.MessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	route, ok := h.routes[req.Type]
	if !ok {
		httputil.HandleErrorGin(c, ErrUnknownMessageType, h.logger)
		return
	}

	payload, err := route(c, &req)
	if err != nil {
		h.logger.Debug("message failed", slog.String("type", req.Type))
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Success(c, payload)
}

func (h *MessageHandler) setMasterPassword(c *gin.Context, req *dto.MessageRequest) (gin.H, error) {
	return nil, h.vaultUseCase.SetPassword(c.Request.Context(), req.Password)
}

func (h *MessageHandler) masterPasswordStatus(c *gin.Context, _ *dto.MessageRequest) (gin.H, error) {
	return gin.H{"hasPassword": h.vaultUseCase.HasPassword(c.Request.Context())}, nil
}

func (h *MessageHandler) clearMasterPassword(c *gin.Context, _ *dto.MessageRequest) (gin.H, error) {
	h.vaultUseCase.ClearPassword(c.Request.Context())
	return nil, nil
}

func (h *MessageHandler) saveAPIKey(c *gin.Context, req *dto.MessageRequest) (gin.H, error) {
	return nil, h.codeGenUseCase.SaveAPIKey(c.Request.Context(), req.APIKey)
}

func (h *MessageHandler) getAPIKey(c *gin.Context, _ *dto.MessageRequest) (gin.H, error) {
	apiKey, found, err := h.codeGenUseCase.APIKey(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if !found {
		return gin.H{"apiKey": nil}, nil
	}
	return gin.H{"apiKey": apiKey}, nil
}

func (h *MessageHandler) generateCode(c *gin.Context, req *dto.MessageRequest) (gin.H, error) {
	result, err := h.codeGenUseCase.Generate(c.Request.Context(), req.Prompt, dto.SourceFiles(req.Files))
	if err != nil {
		return nil, err
	}
	return gin.H{"data": result}, nil
}

func (h *MessageHandler) pullProject(c *gin.Context, _ *dto.MessageRequest) (gin.H, error) {
	ctx := c.Request.Context()

	settings, err := h.projectUseCase.Settings(ctx)
	if err != nil {
		return nil, err
	}

	files, err := h.projectUseCase.Pull(ctx, settings.ScriptID)
	if err != nil {
		return nil, err
	}
	return gin.H{"files": files}, nil
}

func (h *MessageHandler) pushProject(c *gin.Context, req *dto.MessageRequest) (gin.H, error) {
	ctx := c.Request.Context()

	settings, err := h.projectUseCase.Settings(ctx)
	if err != nil {
		return nil, err
	}

	files := dto.GasFiles(req.Files)
	if err := h.projectUseCase.Push(ctx, settings.ScriptID, files); err != nil {
		return nil, err
	}
	return gin.H{"files": files}, nil
}

func (h *MessageHandler) setProjectID(c *gin.Context, req *dto.MessageRequest) (gin.H, error) {
	settings, err := h.projectUseCase.SetProjectID(c.Request.Context(), req.ProjectID)
	if err != nil {
		return nil, err
	}
	return gin.H{"projectId": settings.ScriptID}, nil
}

func (h *MessageHandler) authenticate(c *gin.Context, _ *dto.MessageRequest) (gin.H, error) {
	credential, err := h.oauthUseCase.Authenticate(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if credential.ExpiryDate != 0 {
		return gin.H{"expiryDate": credential.ExpiryDate}, nil
	}
	return nil, nil
}

func (h *MessageHandler) mergeUpdates(_ *gin.Context, req *dto.MessageRequest) (gin.H, error) {
	if err := (&codegenDomain.Response{Updates: req.Updates}).Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}
	return gin.H{"files": reconcile.Merge(dto.GasFiles(req.Originals), req.Updates)}, nil
}

func (h *MessageHandler) applyUpdates(c *gin.Context, req *dto.MessageRequest) (gin.H, error) {
	if err := (&codegenDomain.Response{Updates: req.Updates}).Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	files, err := h.projectUseCase.Apply(c.Request.Context(), req.Updates)
	if err != nil {
		return nil, err
	}
	return gin.H{"files": files}, nil
}
