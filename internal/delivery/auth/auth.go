package auth

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	userDomain "baduk_arena/internal/domain/user"
	errs "baduk_arena/internal/errors"
	"baduk_arena/internal/httpresponse"
	authUC "baduk_arena/internal/usecase/auth"
	"baduk_arena/internal/utils"
)

const sessionCookie = "sessionID"

type AuthHandler struct {
	usecaseHandler *authUC.AuthUsecaseHandler
	log            *zap.SugaredLogger
	ttl            time.Duration
}

type LoginRequest struct {
	Username string `json:"username"`
}

func NewAuthHandler(storage authUC.SessionStorage, log *zap.SugaredLogger, ttl time.Duration) *AuthHandler {
	return &AuthHandler{
		usecaseHandler: authUC.NewUserUsecaseHandler(storage),
		log:            log,
		ttl:            ttl,
	}
}

// Login godoc
// @Summary Вход гостя
// @Description Заводит гостя по имени, устанавливает cookie sessionID
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Имя игрока"
// @Success 200 {object} user.User
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginData LoginRequest
	if err := utils.DecodeJSONRequest(r, &loginData); err != nil {
		a.log.Error("Login: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	sessionID, user, err := a.usecaseHandler.LoginGuest(r.Context(), loginData.Username)
	if err != nil {
		if errors.Is(err, errs.ErrBadUsername) {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
				httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			return
		}
		a.log.Error("Login: internal error: ", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(a.ttl),
		Secure:   true,
		HttpOnly: true,
	})

	a.log.Infof("guest %s (%s) logged in", user.Username, user.ID)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, user)
}

// Logout godoc
// @Summary Выход пользователя
// @Description Удаляет сессию пользователя по cookie sessionID
// @Tags auth
// @Produce json
// @Success 200 {string} string "OK"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /logout [delete]
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		a.log.Warn("Logout: no cookie provided")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: http.ErrNoCookie.Error()})
		return
	}

	if err = a.usecaseHandler.LogoutUser(r.Context(), cookie.Value); err != nil {
		a.log.Warnf("Logout: failed to logout: %v", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// GetUser возвращает пользователя из сессии.
// Если сессия просрочена или не найдена, пишет ошибку в http-ответ и возвращает false.
func (a *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) (userDomain.User, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		a.log.Warn("GetUser: no sessionID cookie")
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "Не найдена cookie sessionID"})
		return userDomain.User{}, false
	}

	user, err := a.usecaseHandler.GetUserFromSession(r.Context(), cookie.Value)
	if err != nil {
		a.log.Warn("GetUser: session not found or expired")
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: "Сессия не найдена или истекла"})
		return userDomain.User{}, false
	}
	return user, true
}
