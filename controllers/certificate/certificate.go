package certificateController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"aimwell/middleware"
	"aimwell/models"
	"aimwell/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CertificateController handles certificate issuance, PDF generation,
// proof uploads and the public verification endpoint.
type CertificateController struct {
	Db     *gorm.DB
	Store  *utils.FileStore
	Mailer *utils.Mailer
}

func NewCertificateController(db *gorm.DB, store *utils.FileStore, mailer *utils.Mailer) *CertificateController {
	return &CertificateController{Db: db, Store: store, Mailer: mailer}
}

// IssueCertificate creates a certificate row for a completed course. Called
// by the course controller when completion is detected; idempotent per
// user+course.
func IssueCertificate(db *gorm.DB, mailer *utils.Mailer, user models.User, course models.Course, score int) (*models.Certificate, error) {
	var existing models.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", user.ID, course.ID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	cert := models.Certificate{
		UserID:           user.ID,
		CourseID:         course.ID,
		CourseTitle:      course.Title,
		VerificationCode: utils.GenerateVerificationCode(),
		Score:            score,
		Source:           "COURSE",
		IssuedAt:         time.Now(),
	}
	if err := db.Create(&cert).Error; err != nil {
		return nil, err
	}

	if mailer != nil {
		if err := mailer.SendCertificateEmail(user.Email, user.Name, course.Title, cert.VerificationCode); err != nil {
			log.Printf("Failed to send certificate email to %s: %v", user.Email, err)
		}
	}
	return &cert, nil
}

// GeneratePDF renders the certificate PDF, stores it at
// {ownerId}/{filename} and saves the public URL on the row. A certificate
// owned by another user yields 404, not its data.
func (cc *CertificateController) GeneratePDF(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID, err := c.ParamsInt("id")
	if err != nil || certID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate id!", nil)
	}

	// Ownership check: scope the read to the requesting user
	var cert models.Certificate
	if err := cc.Db.Where("id = ? AND user_id = ? AND is_deleted = false", certID, userID).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var user models.User
	if err := cc.Db.Where("id = ?", cert.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load certificate owner!", nil)
	}

	studentName := displayName(user)
	pdfBytes, err := utils.GenerateCertificatePDF(studentName, cert.CourseTitle, cert.Score, cert.IssuedAt, cert.VerificationCode)
	if err != nil {
		log.Printf("Failed to render certificate %d: %v", cert.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to render certificate!", nil)
	}

	filename := fmt.Sprintf("certificate-%s.pdf", cert.VerificationCode)
	url, err := cc.Store.SaveBytes(cert.UserID, filename, pdfBytes)
	if err != nil {
		log.Printf("Failed to store certificate %d: %v", cert.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store certificate!", nil)
	}

	// Upload and URL update are not atomic; re-invoking regenerates both.
	if err := cc.Db.Model(&cert).Update("certificate_url", url).Error; err != nil {
		log.Printf("Failed to save certificate URL for %d: %v", cert.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save certificate URL!", nil)
	}
	cert.CertificateURL = url

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate generated!", fiber.Map{
		"certificate_id":  cert.ID,
		"certificate_url": cert.CertificateURL,
	})
}

// UploadProof stores an externally earned certificate file and records it
func (cc *CertificateController) UploadProof(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := cc.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	title := c.FormValue("course_title")
	if strings.TrimSpace(title) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "course_title is required!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate file is required!", nil)
	}

	url, err := cc.Store.SaveUploadedFile(userID, file)
	if err != nil {
		log.Printf("Failed to store proof upload for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	cert := models.Certificate{
		UserID:           userID,
		CourseTitle:      title,
		VerificationCode: utils.GenerateVerificationCode(),
		Source:           "UPLOAD",
		CertificateURL:   url,
		IssuedAt:         time.Now(),
	}
	if err := cc.Db.Create(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate proof uploaded!", cert)
}

// GetUserCertificates gets all certificates for the current user
func (cc *CertificateController) GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := cc.Db.Where("user_id = ? AND is_deleted = false", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}

// VerifyCertificate is the public verification endpoint. A malformed or
// unknown code never produces a server error; the envelope always carries
// {valid, message}. The verified flag and timestamp are stamped at most
// once, on the first successful lookup.
func (cc *CertificateController) VerifyCertificate(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	if !utils.IsValidVerificationCode(code) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid":   false,
			"message": "Malformed verification code",
		})
	}

	var cert models.Certificate
	if err := cc.Db.Where("verification_code = ? AND is_deleted = false", code).First(&cert).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"valid":   false,
			"message": "Certificate not found or invalid",
		})
	}

	var user models.User
	if err := cc.Db.Where("id = ?", cert.UserID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"valid":   false,
			"message": "Certificate not found or invalid",
		})
	}

	// Stamp at most once; a second lookup never re-writes verified_at
	if !cert.Verified {
		now := time.Now()
		if err := cc.Db.Model(&cert).Updates(map[string]interface{}{
			"verified":    true,
			"verified_at": now,
		}).Error; err != nil {
			log.Printf("Failed to stamp verification for certificate %d: %v", cert.ID, err)
		}
	}

	resp := fiber.Map{
		"valid":        true,
		"student_name": displayName(user),
		"course":       cert.CourseTitle,
		"score":        cert.Score,
		"issued_at":    cert.IssuedAt.Format("January 2, 2006"),
	}
	if cert.CertificateURL != "" {
		resp["certificate_url"] = cert.CertificateURL
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// displayName resolves a student name with a fallback chain:
// name, then the email local part, then a generic label.
func displayName(user models.User) string {
	if strings.TrimSpace(user.Name) != "" {
		return user.Name
	}
	if at := strings.Index(user.Email, "@"); at > 0 {
		return user.Email[:at]
	}
	return "Student"
}
