package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taja-backend/models"
	"taja-backend/services"
	"taja-backend/utils"
)

// Collaborator interfaces consumed by the provisioning workflow. Concrete
// implementations live in models/ and services/; the controller only depends
// on what it calls so tests can swap in fakes.

// UserStore persists user records keyed by normalized phone number.
type UserStore interface {
	Upsert(ctx context.Context, phoneNumber string, update models.UserUpdate) (*models.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	DistinctSellerCategories(ctx context.Context) ([]string, error)
}

// AddressValidator validates a seller's store address.
type AddressValidator interface {
	ValidateAddress(ctx context.Context, req services.AddressValidationRequest) (*services.AddressValidationResult, error)
}

// ImageUploader uploads a local file and returns its hosted URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, localPath string) (*services.UploadResult, error)
}

// ReferralTracker marks previously-unknown contacts as converted.
type ReferralTracker interface {
	TrackContact(ctx context.Context, phoneNumber string) error
	MarkAsConverted(ctx context.Context, phoneNumber, userType string) error
}

// Notifier records welcome notifications.
type Notifier interface {
	GetWelcomeTemplates() services.WelcomeTemplates
	CreateNotification(ctx context.Context, input services.NotificationInput) error
}

// SessionStore is the chat-session store mutated after signup.
type SessionStore interface {
	GetSession(ctx context.Context, phoneNumber string) (*models.Session, error)
	UpdateSession(ctx context.Context, phoneNumber string, session *models.Session) error
	RefreshSessionFromDB(ctx context.Context, phoneNumber string) error
}

// MessageSender delivers WhatsApp messages through the chatbot gateway.
type MessageSender interface {
	SendText(ctx context.Context, to, body string) error
	SendMedia(ctx context.Context, to, filePath, caption string) error
}

// UserController handles account provisioning and category lookups
type UserController struct {
	Users     UserStore
	Validator AddressValidator
	Uploader  ImageUploader
	Referrals ReferralTracker
	Notifier  Notifier
	Sessions  SessionStore
	WhatsApp  MessageSender

	// GenerateBanner renders the welcome image; swapped out in tests.
	GenerateBanner func(name, dir string) (string, error)
	UploadDir      string
	BannerDir      string
	// FallbackDelay spaces the plain-text caption resend behind the media
	// message so the two do not collide on the client.
	FallbackDelay time.Duration
}

// NewUserController creates a UserController wired to the real collaborators
func NewUserController(
	users UserStore,
	validator AddressValidator,
	uploader ImageUploader,
	referrals ReferralTracker,
	notifier Notifier,
	sessions SessionStore,
	whatsapp MessageSender,
) *UserController {
	return &UserController{
		Users:          users,
		Validator:      validator,
		Uploader:       uploader,
		Referrals:      referrals,
		Notifier:       notifier,
		Sessions:       sessions,
		WhatsApp:       whatsapp,
		GenerateBanner: utils.GenerateWelcomeBanner,
		UploadDir:      "uploads",
		BannerDir:      "banners",
		FallbackDelay:  2 * time.Second,
	}
}

// createUserRequest is the signup payload, accepted as JSON or multipart
// form data (the web signup form posts multipart when a profile image is
// attached).
type createUserRequest struct {
	PhoneNumber      string   `json:"phoneNumber"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	UserType         string   `json:"userType"`
	StoreName        string   `json:"storeName"`
	StoreDescription string   `json:"storeDescription"`
	StoreAddress     string   `json:"storeAddress"`
	StoreCategories  []string `json:"storeCategories"`
	ProfileImage     string   `json:"profileImage"`
}

// parseCreateUserRequest decodes the request body. For multipart bodies the
// uploaded profile image is saved under UploadDir and its path returned.
func (uc *UserController) parseCreateUserRequest(r *http.Request) (*createUserRequest, string, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, "", err
		}
		return &req, "", nil
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, "", err
	}
	req := createUserRequest{
		PhoneNumber:      r.FormValue("phoneNumber"),
		Name:             r.FormValue("name"),
		Email:            r.FormValue("email"),
		UserType:         r.FormValue("userType"),
		StoreName:        r.FormValue("storeName"),
		StoreDescription: r.FormValue("storeDescription"),
		StoreAddress:     r.FormValue("storeAddress"),
		ProfileImage:     r.FormValue("profileImage"),
	}
	// Categories arrive either as repeated fields or a single JSON array
	values := r.Form["storeCategories"]
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			values = decoded
		}
	}
	for _, v := range values {
		if v != "" {
			req.StoreCategories = append(req.StoreCategories, v)
		}
	}

	file, header, err := r.FormFile("profileImage")
	if err == http.ErrMissingFile {
		return &req, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	if err := os.MkdirAll(uc.UploadDir, 0o755); err != nil {
		return nil, "", err
	}
	tempPath := filepath.Join(uc.UploadDir, uuid.NewString()+filepath.Ext(header.Filename))
	dst, err := os.Create(tempPath)
	if err != nil {
		return nil, "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(tempPath)
		return nil, "", err
	}
	return &req, tempPath, nil
}

// CreateOrUpdateUser provisions an account: validate, upload, upsert, then
// run the best-effort side effects. Once the user record is persisted the
// response is a success regardless of side-effect failures.
func (uc *UserController) CreateOrUpdateUser(w http.ResponseWriter, r *http.Request) {
	req, uploadedFile, err := uc.parseCreateUserRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PhoneNumber == "" || req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "phoneNumber, name, and email are required")
		return
	}

	// Normalize phone number (strip @c.us)
	phoneNumber := utils.NormalizePhoneNumber(req.PhoneNumber)
	userType := req.UserType
	if userType == "" {
		userType = models.UserTypeCustomer
	}

	// Validate seller fields before any network call
	var storeAddressValidation *models.AddressValidation
	if userType == models.UserTypeSeller {
		if req.StoreName == "" {
			writeError(w, http.StatusBadRequest, "storeName is required for sellers")
			return
		}
		if len(req.StoreCategories) == 0 {
			writeError(w, http.StatusBadRequest, "At least one storeCategory is required for sellers")
			return
		}
		if req.StoreAddress == "" {
			writeError(w, http.StatusBadRequest, "storeAddress is required for sellers")
			return
		}

		validation, err := uc.Validator.ValidateAddress(r.Context(), services.AddressValidationRequest{
			Phone:   phoneNumber,
			Email:   req.Email,
			Name:    req.Name,
			Address: req.StoreAddress,
		})
		if err != nil {
			log.Printf("Shipbubble address validation failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to validate store address. Please try again.")
			return
		}
		if validation.Status != "success" {
			writeError(w, http.StatusBadRequest, "Invalid store address. Please check and try again.")
			return
		}
		storeAddressValidation = validation.Data
	}

	// Upload the profile image if one was attached
	profileImage := req.ProfileImage
	if uploadedFile != "" {
		result, err := uc.Uploader.UploadImage(r.Context(), uploadedFile)
		if err != nil {
			log.Printf("Cloudinary upload failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Image upload failed")
			return
		}
		profileImage = result.SecureURL
		// Remove local file after upload
		if err := os.Remove(uploadedFile); err != nil {
			log.Printf("Failed to remove uploaded file %s: %v", uploadedFile, err)
		}
	}

	user, err := uc.Users.Upsert(r.Context(), phoneNumber, models.UserUpdate{
		Name:                   req.Name,
		Email:                  req.Email,
		UserType:               userType,
		ProfileImage:           profileImage,
		StoreName:              req.StoreName,
		StoreDescription:       req.StoreDescription,
		StoreAddress:           req.StoreAddress,
		StoreCategories:        req.StoreCategories,
		StoreAddressValidation: storeAddressValidation,
	})
	if err != nil {
		log.Printf("Failed to create/update user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create/update user")
		return
	}

	// Everything below is best-effort: the account exists, so none of these
	// failures may change the response.

	// Mark unknown user as converted if they existed
	if err := uc.Referrals.MarkAsConverted(r.Context(), phoneNumber, userType); err != nil {
		log.Printf("Failed to mark unknown user as converted: %v", err)
	} else {
		log.Printf("Marked unknown user %s as converted to %s", phoneNumber, userType)
	}

	// Send welcome notification based on user type
	templates := uc.Notifier.GetWelcomeTemplates()
	template := templates.Customer
	if userType == models.UserTypeSeller {
		template = templates.Seller
	}
	if err := uc.Notifier.CreateNotification(r.Context(), services.NotificationInput{
		PhoneNumber: phoneNumber,
		UserType:    userType,
		Email:       user.Email,
		Name:        user.Name,
		Title:       template.Title,
		Message:     template.Message,
		Type:        template.Type,
		Category:    models.NotificationCategorySystem,
	}); err != nil {
		log.Printf("Failed to send welcome notification: %v", err)
	} else {
		log.Printf("Sent welcome notification to %s", phoneNumber)
	}

	// If a session exists for this phoneNumber, clear needsAccount
	session, err := uc.Sessions.GetSession(r.Context(), phoneNumber)
	if err != nil {
		log.Printf("Failed to load session for %s: %v", phoneNumber, err)
	} else if session != nil && session.NeedsAccount {
		session.NeedsAccount = false
		if err := uc.Sessions.UpdateSession(r.Context(), phoneNumber, session); err != nil {
			log.Printf("Failed to clear needsAccount for %s: %v", phoneNumber, err)
		} else {
			log.Printf("needsAccount cleared for %s", phoneNumber)
		}
	}
	// Force session refresh after account creation/update
	if err := uc.Sessions.RefreshSessionFromDB(r.Context(), phoneNumber); err != nil {
		log.Printf("Failed to refresh session for %s: %v", phoneNumber, err)
	}

	// Send WhatsApp custom banner after account creation
	if user.PhoneNumber != "" && user.Name != "" {
		if err := uc.sendWelcomeBanner(r.Context(), user); err != nil {
			log.Printf("Failed to send WhatsApp welcome banner: %v", err)
		} else {
			log.Printf("Welcome banner sent to %s (%s)", user.Name, user.PhoneNumber)
		}
	}

	writeJSON(w, http.StatusOK, user)
}

// sendWelcomeBanner renders and delivers the welcome image, then schedules
// the plain-text caption as an independent fallback for clients that drop
// captions on media messages.
func (uc *UserController) sendWelcomeBanner(ctx context.Context, user *models.User) error {
	waNumber := utils.WhatsAppAddress(user.PhoneNumber)
	bannerPath, err := uc.GenerateBanner(user.Name, uc.BannerDir)
	if err != nil {
		return fmt.Errorf("failed to generate banner: %w", err)
	}

	caption := fmt.Sprintf("Welcome to %s, %s! Your account is ready. Shop & sell on WhatsApp.", utils.ProjectName(), user.Name)
	if err := uc.WhatsApp.SendMedia(ctx, waNumber, bannerPath, caption); err != nil {
		return fmt.Errorf("failed to send media message: %w", err)
	}

	// The fallback runs after the request completes, so it gets its own
	// context rather than the request's.
	time.AfterFunc(uc.FallbackDelay, func() {
		fallbackCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.WhatsApp.SendText(fallbackCtx, waNumber, caption); err != nil {
			log.Printf("Fallback text message failed: %v", err)
		}
	})

	if err := os.Remove(bannerPath); err != nil {
		return fmt.Errorf("failed to remove banner file: %w", err)
	}
	return nil
}

// GetUser returns a single user by phone number
func (uc *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	phoneNumber := utils.NormalizePhoneNumber(mux.Vars(r)["phoneNumber"])

	user, err := uc.Users.FindByPhone(r.Context(), phoneNumber)
	if err != nil {
		log.Printf("Failed to fetch user %s: %v", phoneNumber, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// TrackContact records an unknown contact reported by the chatbot gateway
func (uc *UserController) TrackContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "phoneNumber is required")
		return
	}

	phoneNumber := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err := uc.Referrals.TrackContact(r.Context(), phoneNumber); err != nil {
		log.Printf("Failed to track contact %s: %v", phoneNumber, err)
		writeError(w, http.StatusInternalServerError, "Failed to track contact")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"tracked": true})
}
