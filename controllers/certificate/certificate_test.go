package certificateController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aimwell/config"
	certificateController "aimwell/controllers/certificate"
	"aimwell/middleware"
	"aimwell/models"
	"aimwell/routers/certificateRoutes"
	"aimwell/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type certTestEnv struct {
	app    *fiber.App
	db     *gorm.DB
	store  *utils.FileStore
	token  string
	userID uint
}

func setupCertTest(t *testing.T) *certTestEnv {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Certificate{}))

	user := models.User{Name: "Wanjiku Kamau", Email: "wanjiku@example.com", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	store := utils.NewFileStore(t.TempDir(), "/uploads")

	app := fiber.New()
	certificateRoutes.SetupCertificateRoutes(app, certificateController.NewCertificateController(db, store, nil))

	return &certTestEnv{app: app, db: db, store: store, token: token, userID: user.ID}
}

func (env *certTestEnv) get(t *testing.T, path string, authed bool) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authed {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	resp, err := env.app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func (env *certTestEnv) seedCertificate(t *testing.T, userID uint) *models.Certificate {
	t.Helper()
	cert := models.Certificate{
		UserID:           userID,
		CourseID:         1,
		CourseTitle:      "First Aid Essentials",
		VerificationCode: utils.GenerateVerificationCode(),
		Score:            88,
		Source:           "COURSE",
		IssuedAt:         time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, env.db.Create(&cert).Error)
	return &cert
}

func TestVerifyCertificate(t *testing.T) {
	env := setupCertTest(t)
	cert := env.seedCertificate(t, env.userID)

	resp, parsed := env.get(t, "/verify-certificate/"+cert.VerificationCode, false)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, parsed["valid"])
	assert.Equal(t, "Wanjiku Kamau", parsed["student_name"])
	assert.Equal(t, "First Aid Essentials", parsed["course"])
	assert.Equal(t, float64(88), parsed["score"])
	assert.Equal(t, "March 15, 2024", parsed["issued_at"])
	_, hasURL := parsed["certificate_url"]
	assert.False(t, hasURL, "no URL should be reported before the PDF is generated")

	var stamped models.Certificate
	require.NoError(t, env.db.First(&stamped, cert.ID).Error)
	assert.True(t, stamped.Verified)
	require.NotNil(t, stamped.VerifiedAt)
}

func TestVerifyCertificateStampsOnlyOnce(t *testing.T) {
	env := setupCertTest(t)
	cert := env.seedCertificate(t, env.userID)

	_, _ = env.get(t, "/verify-certificate/"+cert.VerificationCode, false)

	var first models.Certificate
	require.NoError(t, env.db.First(&first, cert.ID).Error)
	require.NotNil(t, first.VerifiedAt)
	firstStamp := *first.VerifiedAt

	time.Sleep(10 * time.Millisecond)
	resp, parsed := env.get(t, "/verify-certificate/"+cert.VerificationCode, false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, parsed["valid"])

	var second models.Certificate
	require.NoError(t, env.db.First(&second, cert.ID).Error)
	require.NotNil(t, second.VerifiedAt)
	assert.True(t, second.VerifiedAt.Equal(firstStamp), "verified_at must not move on repeat lookups")
}

func TestVerifyCertificateLowercaseCodeAccepted(t *testing.T) {
	env := setupCertTest(t)
	cert := env.seedCertificate(t, env.userID)

	resp, parsed := env.get(t, "/verify-certificate/"+strings.ToLower(cert.VerificationCode), false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, parsed["valid"])
}

func TestVerifyCertificateMalformedCode(t *testing.T) {
	env := setupCertTest(t)

	for _, code := range []string{"nonsense", "AW-123", "AW-ZZZZZZZZZZZ"} {
		resp, parsed := env.get(t, "/verify-certificate/"+code, false)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, parsed["valid"])
		assert.Equal(t, "Malformed verification code", parsed["message"])
	}
}

func TestVerifyCertificateUnknownCode(t *testing.T) {
	env := setupCertTest(t)
	cert := env.seedCertificate(t, env.userID)

	resp, parsed := env.get(t, "/verify-certificate/AW-0123456789", false)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, parsed["valid"])
	assert.Equal(t, "Certificate not found or invalid", parsed["message"])

	// a failed lookup must not mutate any row
	var untouched models.Certificate
	require.NoError(t, env.db.First(&untouched, cert.ID).Error)
	assert.False(t, untouched.Verified)
	assert.Nil(t, untouched.VerifiedAt)
}

func TestIssueCertificateIdempotent(t *testing.T) {
	env := setupCertTest(t)

	var user models.User
	require.NoError(t, env.db.First(&user, env.userID).Error)
	course := models.Course{Title: "First Aid Essentials", Status: "ACTIVE"}
	require.NoError(t, env.db.Create(&course).Error)

	first, err := certificateController.IssueCertificate(env.db, nil, user, course, 90)
	require.NoError(t, err)
	second, err := certificateController.IssueCertificate(env.db, nil, user, course, 75)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.VerificationCode, second.VerificationCode)

	var count int64
	env.db.Model(&models.Certificate{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGeneratePDFStoresFileAndURL(t *testing.T) {
	env := setupCertTest(t)
	cert := env.seedCertificate(t, env.userID)

	req := httptest.NewRequest("POST", fmt.Sprintf("/certificate/%d/generate", cert.ID), nil)
	req.Header.Set("Authorization", "Bearer "+env.token)
	resp, err := env.app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))

	data := parsed["data"].(map[string]interface{})
	wantURL := fmt.Sprintf("/uploads/%d/certificate-%s.pdf", env.userID, cert.VerificationCode)
	assert.Equal(t, wantURL, data["certificate_url"])

	var updated models.Certificate
	require.NoError(t, env.db.First(&updated, cert.ID).Error)
	assert.Equal(t, wantURL, updated.CertificateURL)

	pdfPath := filepath.Join(env.store.Root, fmt.Sprintf("%d", env.userID), fmt.Sprintf("certificate-%s.pdf", cert.VerificationCode))
	pdfBytes, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, len(pdfBytes) > 500, "rendered PDF should not be a placeholder")
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGeneratePDFScopedToOwner(t *testing.T) {
	env := setupCertTest(t)

	other := models.User{Name: "Otieno", Email: "otieno@example.com", Password: "hash"}
	require.NoError(t, env.db.Create(&other).Error)
	cert := env.seedCertificate(t, other.ID)

	req := httptest.NewRequest("POST", fmt.Sprintf("/certificate/%d/generate", cert.ID), nil)
	req.Header.Set("Authorization", "Bearer "+env.token)
	resp, err := env.app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetUserCertificatesOnlyOwn(t *testing.T) {
	env := setupCertTest(t)

	other := models.User{Name: "Otieno", Email: "otieno@example.com", Password: "hash"}
	require.NoError(t, env.db.Create(&other).Error)
	env.seedCertificate(t, env.userID)
	env.seedCertificate(t, other.ID)

	resp, parsed := env.get(t, "/certificate/list", true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}
