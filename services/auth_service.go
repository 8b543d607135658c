package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/smtp"
	"time"

	"carrent/config"
	"carrent/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// GenerateVerificationCode returns a random 6-digit one-time code.
func GenerateVerificationCode() (string, error) {
	code := ""

	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}

	return code, nil
}

func smtpConfig() (from, password, host, port string) {
	return config.GetEnv("SMTP_FROM"),
		config.GetEnv("SMTP_PASSWORD"),
		config.GetEnv("SMTP_HOST"),
		config.GetEnv("SMTP_PORT")
}

// SendVerificationEmail mails a one-time code for account verification.
func SendVerificationEmail(email string, code string) error {
	from, password, host, port := smtpConfig()
	to := []string{email}
	subject := "Subject: Your one-time code\n"
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<title>Verification code</title>
		</head>
		<body>
			<p>Hello %s,</p>
			<p>We received a request for a one-time code for your account.</p>
			<p>Your one-time code is: <strong>%s</strong></p>
			<p>If you did not request this code you can safely ignore this email.</p>
			<p>Thanks,<br>The accounts team</p>
		</body>
		</html>
	`, email, code)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

// SendNews mails a short plain notification, e.g. after a password change.
func SendNews(email, subject, text string) error {
	from, password, host, port := smtpConfig()
	to := []string{email}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head><meta charset="UTF-8"></head>
		<body>
			<p>Hello,</p>
			<p>%s</p>
			<p>Thanks,<br>The accounts team</p>
		</body>
		</html>
	`, text)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\nSubject: " + subject + "\n\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

// SendRentalEmail confirms a new rental to the renter.
func SendRentalEmail(email string, rentalID uint, totalPrice int, startDate, endDate string) error {
	from, password, host, port := smtpConfig()
	to := []string{email}
	subject := "Subject: Rental confirmed\n"

	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Rental confirmed</title>
	</head>
	<body>
		<p>Hello,</p>
		<p>Your rental has been created.</p>
		<ul>
			<li>Rental id: <strong>%d</strong></li>
			<li>Pick-up date: <strong>%s</strong></li>
			<li>Return date: <strong>%s</strong></li>
			<li>Total price: <strong>%d</strong></li>
		</ul>
		<p>We will let you know about any changes to your rental.</p>
		<p>Thanks,<br>The support team</p>
	</body>
	</html>`, rentalID, startDate, endDate, totalPrice)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("no user with email %s", email)
	}

	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func CheckPassword(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

var secretKey = []byte(config.GetEnv("SECRET_KEY_ACCESS_TOKEN"))

// GenerateToken signs an HS256 access token carrying the user id and role.
func GenerateToken(userInfo UserInfo, expiryMinutes int) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

// VerifyGoogleIDToken validates a Google sign-in token against our client id.
func VerifyGoogleIDToken(tokenID string) (*idtoken.Payload, error) {
	clientID := config.GetEnv("GOOGLE_CLIENT_ID")
	payload, err := idtoken.Validate(context.Background(), tokenID, clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google id token: %v", err)
	}
	return payload, nil
}

// CreateGoogleUser registers a user from a verified Google profile.
func CreateGoogleUser(name, email, avatar string) (models.User, error) {
	existing, err := GetUserByEmail(email)
	if err == nil {
		return existing, nil
	}

	user := models.User{
		Name:       name,
		Email:      email,
		Avatar:     avatar,
		IsVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
