package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	"github.com/mangaportal/mangaportal-server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get profile",
		Description: "Returns the caller's profile: identity, deterministic avatar color, and stored image if any",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfileName",
		Method:      http.MethodPatch,
		Path:        "/api/v1/profile/name",
		Summary:     "Update display name",
		Description: "Changes the session's display name and issues a fresh access token carrying it. The email stays immutable.",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProfileName)

	huma.Register(s.api, huma.Operation{
		OperationID: "setProfileImage",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile/image",
		Summary:     "Set profile image",
		Description: "Validates and stores an uploaded avatar. Accepts a data URI or bare base64 payload.",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetProfileImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfileImage",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile/image",
		Summary:     "Get profile image",
		Description: "Returns the stored avatar with its blur hash",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfileImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteProfileImage",
		Method:      http.MethodDelete,
		Path:        "/api/v1/profile/image",
		Summary:     "Delete profile image",
		Description: "Removes the caller's avatar",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteProfileImage)
}

// === DTOs ===

// ProfileOutput wraps the profile view for Huma.
type ProfileOutput struct {
	Body domain.Profile
}

// UpdateNameRequest is the request body for a display name change.
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120" doc:"New display name"`
}

// UpdateNameInput wraps the name change request for Huma.
type UpdateNameInput struct {
	Body UpdateNameRequest
}

// SetImageRequest is the request body for an avatar upload.
type SetImageRequest struct {
	Image string `json:"image" validate:"required" doc:"Data URI or bare base64 image payload"`
}

// SetImageInput wraps the avatar upload for Huma.
type SetImageInput struct {
	Body SetImageRequest
}

// ProfileImageOutput wraps the stored avatar for Huma.
type ProfileImageOutput struct {
	Body domain.ProfileImage
}

// === Handlers ===

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	profile, err := s.services.Profile.View(ctx, IdentityFromContext(ctx))
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleUpdateProfileName(ctx context.Context, input *UpdateNameInput) (*AuthOutput, error) {
	sessionID, err := RequireSession(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.services.Session.UpdateName(ctx, sessionID, service.UpdateNameRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleSetProfileImage(ctx context.Context, input *SetImageInput) (*ProfileImageOutput, error) {
	image, err := s.services.Profile.SetImage(ctx, IdentityFromContext(ctx), input.Body.Image)
	if err != nil {
		return nil, err
	}

	return &ProfileImageOutput{Body: *image}, nil
}

func (s *Server) handleGetProfileImage(ctx context.Context, _ *struct{}) (*ProfileImageOutput, error) {
	image, err := s.services.Profile.GetImage(ctx, IdentityFromContext(ctx))
	if err != nil {
		return nil, err
	}

	return &ProfileImageOutput{Body: *image}, nil
}

func (s *Server) handleDeleteProfileImage(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.services.Profile.DeleteImage(ctx, IdentityFromContext(ctx)); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Profile image removed"}}, nil
}
