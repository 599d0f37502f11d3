package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/delci/zapatos-api/internal/core/ports/services"
	"github.com/delci/zapatos-api/internal/dto"
	"github.com/delci/zapatos-api/internal/handlers"
	"github.com/delci/zapatos-api/internal/platform/config"
	"github.com/delci/zapatos-api/internal/utils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	passwordHash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	cfg := &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "zapatos-test",
		AdminUsername:     "admin",
		AdminPasswordHash: passwordHash,
		IsProduction:      true,
	}

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Client:    new(MockClientService),
		Product:   new(MockProductService),
		Account:   new(MockAccountService),
		Reporting: new(MockReportingService),
	})
}

func (suite *AuthHandlerTestSuite) postLogin(body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	w := suite.postLogin(gin.H{"username": "admin", "password": "correct-horse"})

	suite.Equal(http.StatusOK, w.Code)

	var body dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.NotEmpty(body.Token)
	suite.True(body.ExpiresAt.After(time.Now()))

	// The issued token is accepted by the auth middleware.
	claims, err := utils.ParseAndValidateJWT(body.Token, "test-secret-key-that-is-long-enough")
	suite.Require().NoError(err)
	suite.Equal("admin", claims.Subject)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	w := suite.postLogin(gin.H{"username": "admin", "password": "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)

	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Invalid username or password", body.Error)
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownUsername() {
	w := suite.postLogin(gin.H{"username": "someone-else", "password": "correct-horse"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_MissingFields() {
	w := suite.postLogin(gin.H{"username": "admin"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
