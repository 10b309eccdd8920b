package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerateAndValidate(t *testing.T) {
	Convey("JWT 生成与验证", t, func() {
		j := NewJWT("test-secret", time.Hour)

		token, err := j.GenerateToken("user-1", "alice")
		So(err, ShouldBeNil)
		So(token, ShouldNotBeEmpty)

		claims, err := j.ValidateToken(token)
		So(err, ShouldBeNil)
		So(claims.UserID, ShouldEqual, "user-1")
		So(claims.Username, ShouldEqual, "alice")

		Convey("密钥不匹配时验证失败", func() {
			other := NewJWT("other-secret", time.Hour)
			_, err := other.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期Token返回ErrExpiredToken", func() {
			expired := NewJWT("test-secret", -time.Minute)
			token, err := expired.GenerateToken("user-1", "alice")
			So(err, ShouldBeNil)

			_, err = expired.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	Convey("GenerateRefreshToken 随机性", t, func() {
		a := GenerateRefreshToken()
		b := GenerateRefreshToken()
		So(len(a), ShouldEqual, 64)
		So(a, ShouldNotEqual, b)
	})
}
