package grpc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
	"github.com/Xausdorf/khqr-offline/internal/usecase/form"
)

var _ FormServiceServer = (*Handler)(nil)

type Handler struct {
	form   *form.Controller
	logger *zap.Logger
}

func NewHandler(formUC *form.Controller, logger *zap.Logger) *Handler {
	return &Handler{form: formUC, logger: logger}
}

func (h *Handler) GetForm(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(h.form.Snapshot())
}

// Generate applies any of store_name, account_information, amount and
// currency present in the request, then generates. A rejected amount or
// builder error is reported through the returned state, not as an RPC error.
func (h *Handler) Generate(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in form.Input
	for name, v := range req.GetFields() {
		text := v.GetStringValue()
		switch name {
		case "store_name":
			in.StoreName = &text
		case "account_information":
			in.AccountInformation = &text
		case "amount":
			in.Amount = &text
		case "currency":
			c, err := khqr.ParseCurrency(text)
			if err != nil {
				return nil, status.Error(codes.InvalidArgument, err.Error())
			}
			in.Currency = &c
		}
	}

	return toStruct(h.form.GenerateWith(in))
}

func (h *Handler) Save(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := h.form.Save(ctx); err != nil {
		if errors.Is(err, form.ErrNothingToSave) {
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		h.logger.Error("grpc save failed", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "save failed: %v", err)
	}
	return toStruct(h.form.Snapshot())
}

func (h *Handler) Restore(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(h.form.Restore(ctx))
}

func toStruct(s form.Snapshot) (*structpb.Struct, error) {
	m := map[string]any{
		"state":               string(s.State),
		"store_name":          s.StoreName,
		"account_information": s.AccountInformation,
		"amount":              s.AmountText,
		"currency":            string(s.Currency),
		"payload":             s.Payload,
		"payload_md5":         s.PayloadMD5,
		"error":               s.ErrorMessage,
	}
	if len(s.Image) > 0 {
		m["image_png"] = s.Image
	}
	if s.GenerationID != uuid.Nil {
		m["generation_id"] = s.GenerationID.String()
	}

	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode form: %v", err)
	}
	return out, nil
}
