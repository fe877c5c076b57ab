package mockapi

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
	"github.com/dmitrijs2005/codemonk/internal/client/validate"
	"github.com/dmitrijs2005/codemonk/internal/common"
)

type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Token   string       `json:"token,omitempty"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type userJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StudentID string `json:"studentId,omitempty"`
	Phone     string `json:"phone,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Year      string `json:"year,omitempty"`
}

type userData struct {
	User userJSON `json:"user"`
}

type otpRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func toUserJSON(a account) userJSON {
	return userJSON{
		ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role, StudentID: a.StudentID,
		Phone: a.Phone, WhatsApp: a.WhatsApp, Branch: a.Branch, Year: a.Year,
	}
}

func failure(msg string) envelope {
	return envelope{Success: false, Message: msg}
}

func invalid(fieldErrors map[string]string) envelope {
	env := envelope{Message: validate.Primary(fieldErrors)}
	for _, f := range slices.Sorted(maps.Keys(fieldErrors)) {
		env.Errors = append(env.Errors, fieldError{Field: f, Message: fieldErrors[f]})
	}
	return env
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, failure("Invalid request body"))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: "ok"})
}

func (s *Server) sendOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	if err := validate.Email(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, invalid(map[string]string{"email": err.Error()}))
		return
	}
	if s.store.emailTaken(req.Email) {
		c.JSON(http.StatusConflict, envelope{
			Message: "Email already registered",
			Errors:  []fieldError{{Field: "email", Message: "Email already registered"}},
		})
		return
	}
	s.issueOTP(c, req.Email, req.Name, "OTP sent to %s")
}

func (s *Server) resendOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	name, pending := s.store.pendingName(req.Email)
	if !pending {
		if _, sent := s.store.lastOTP(req.Email); !sent {
			c.JSON(http.StatusBadRequest, failure("No OTP was requested for this email"))
			return
		}
	}
	if req.Name != "" {
		name = req.Name
	}
	s.issueOTP(c, req.Email, name, "A new OTP was sent to %s")
}

func (s *Server) issueOTP(c *gin.Context, email, name, format string) {
	ctx := c.Request.Context()

	code, err := s.newOTP()
	if err != nil {
		s.logger.Error(ctx, "otp generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, failure("Could not send OTP"))
		return
	}
	s.store.putOTP(email, name, code, s.now().Add(s.cfg.OTPTTL))
	// nothing is mailed; the log line is the inbox
	s.logger.Info(ctx, "otp issued", "email", email, "code", code)

	c.JSON(http.StatusOK, envelope{Success: true, Message: fmt.Sprintf(format, email)})
}

func (s *Server) verifyOTP(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	if err := validate.OTP(req.OTP); err != nil {
		c.JSON(http.StatusBadRequest, invalid(map[string]string{"otp": err.Error()}))
		return
	}

	now := s.now()
	switch err := s.store.checkOTP(req.Email, req.OTP, s.cfg.OTPMaxAttempts, now); {
	case errors.Is(err, errNoPendingOTP):
		c.JSON(http.StatusBadRequest, failure("No OTP was requested for this email"))
		return
	case errors.Is(err, errOTPExpired):
		c.JSON(http.StatusBadRequest, failure("OTP expired. Please request a new one."))
		return
	case errors.Is(err, errOTPExhausted):
		c.JSON(http.StatusTooManyRequests, failure("Too many attempts. Please request a new OTP."))
		return
	case errors.Is(err, errOTPMismatch):
		c.JSON(http.StatusBadRequest, failure("Invalid OTP"))
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, failure("Could not verify OTP"))
		return
	}

	token, err := issueVerificationToken(emailKey(req.Email), []byte(s.cfg.SecretKey), s.cfg.VerificationTTL, now)
	if err != nil {
		s.logger.Error(c.Request.Context(), "token signing failed", "error", err)
		c.JSON(http.StatusInternalServerError, failure("Could not verify OTP"))
		return
	}
	c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Email verified",
		Data:    gin.H{"verificationToken": token},
	})
}

func (s *Server) register(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	email, err := emailFromVerificationToken(req.VerificationToken, []byte(s.cfg.SecretKey), s.now())
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusGone, failure("Verification session expired. Please verify your email again."))
		return
	case err != nil:
		c.JSON(http.StatusForbidden, failure("Invalid verification token"))
		return
	case email != emailKey(req.Email):
		c.JSON(http.StatusForbidden, failure("Verification token does not match this email"))
		return
	}

	fields := models.ProfileFields{
		FullName:        req.FullName,
		StudentID:       validate.NormalizeIdentifier(req.StudentID),
		Password:        req.Password,
		ConfirmPassword: req.Password,
		Phone:           req.Phone,
		WhatsApp:        req.WhatsApp,
		Branch:          req.Branch,
		Year:            req.Year,
	}
	if err := validate.StrictRules().Profile(fields); err != nil {
		c.JSON(http.StatusBadRequest, invalid(validate.FieldErrors(err)))
		return
	}

	a, err := s.store.createUser(account{
		Name:      fields.FullName,
		Email:     email,
		StudentID: fields.StudentID,
		Phone:     fields.Phone,
		WhatsApp:  fields.WhatsApp,
		Branch:    fields.Branch,
		Year:      fields.Year,
	}, fields.Password)
	switch {
	case errors.Is(err, errEmailTaken):
		c.JSON(http.StatusConflict, invalid(map[string]string{"email": "Email already registered"}))
		return
	case errors.Is(err, errStudentIDTaken):
		c.JSON(http.StatusConflict, invalid(map[string]string{"studentId": "Student ID already registered"}))
		return
	case err != nil:
		s.logger.Error(c.Request.Context(), "create user failed", "error", err)
		c.JSON(http.StatusInternalServerError, failure("Registration failed"))
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "user_id", a.ID, "email", a.Email)
	c.JSON(http.StatusCreated, envelope{Success: true, Message: "Registration successful. Please log in."})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	if err := validate.Login(req.Email, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, invalid(validate.FieldErrors(err)))
		return
	}

	a, err := s.store.authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, failure("Invalid email or password"))
		return
	}
	token, err := s.store.openSession(a.Email)
	if err != nil {
		s.logger.Error(c.Request.Context(), "session creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, failure("Login failed"))
		return
	}

	c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Login successful",
		Data:    userData{User: toUserJSON(a)},
		Token:   token,
	})
}

func (s *Server) me(c *gin.Context) {
	a, err := s.store.copyOf(c.GetString(ctxEmailKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, failure("Not authenticated"))
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Data: userData{User: toUserJSON(a)}})
}

func (s *Server) logout(c *gin.Context) {
	s.store.closeSession(c.GetString(ctxTokenKey))
	c.JSON(http.StatusOK, envelope{Success: true, Message: "Logged out"})
}

func (s *Server) updateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badBody(c)
		return
	}

	fe := map[string]string{}
	if patch.Phone != "" {
		if err := validate.Phone(patch.Phone); err != nil {
			fe["phone"] = err.Error()
		}
	}
	if patch.WhatsApp != "" {
		if err := validate.Phone(patch.WhatsApp); err != nil {
			fe["whatsapp"] = err.Error()
		}
	}
	if len(fe) > 0 {
		c.JSON(http.StatusBadRequest, invalid(fe))
		return
	}

	a, err := s.store.updateUser(c.GetString(ctxEmailKey), func(a *account) {
		if patch.Name != "" {
			a.Name = patch.Name
		}
		if patch.Phone != "" {
			a.Phone = patch.Phone
		}
		if patch.WhatsApp != "" {
			a.WhatsApp = patch.WhatsApp
		}
		if patch.Branch != "" {
			a.Branch = patch.Branch
		}
		if patch.Year != "" {
			a.Year = patch.Year
		}
	})
	if err != nil {
		c.JSON(http.StatusUnauthorized, failure("Not authenticated"))
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Message: "Profile updated", Data: userData{User: toUserJSON(a)}})
}
