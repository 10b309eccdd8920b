package tests

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"isoko/internal/pkg/apperr"
)

// TestAuthFlow 注册/登录/刷新/退出完整流程
func TestAuthFlow(t *testing.T) {
	skipIfNoMongo(t)

	Convey("认证完整流程", t, func() {
		svc := testServices.AuthService

		Convey("注册成功后直接签发Token对", func() {
			result, err := svc.Register(testCtx, "auth_flow_user", "auth_flow_user@example.com",
				"password123", "password123", "Test", "User")
			So(err, ShouldBeNil)
			So(result.User.ID, ShouldNotBeEmpty)
			So(result.Token.AccessToken, ShouldNotBeEmpty)
			So(result.Token.RefreshToken, ShouldNotBeEmpty)
			So(result.Token.TokenType, ShouldEqual, "Bearer")

			Convey("两次密码不一致时注册失败", func() {
				_, err := svc.Register(testCtx, "auth_flow_user2", "auth_flow_user2@example.com",
					"password123", "password456", "", "")
				So(err, ShouldNotBeNil)
				So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)
			})

			Convey("重复用户名注册失败", func() {
				_, err := svc.Register(testCtx, "auth_flow_user", "other@example.com",
					"password123", "password123", "", "")
				So(err, ShouldNotBeNil)
				So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)
			})

			Convey("重复邮箱注册失败", func() {
				_, err := svc.Register(testCtx, "auth_flow_user3", "auth_flow_user@example.com",
					"password123", "password123", "", "")
				So(err, ShouldNotBeNil)
				So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)
			})

			Convey("正确密码登录成功", func() {
				login, err := svc.Login(testCtx, "auth_flow_user", "password123")
				So(err, ShouldBeNil)
				So(login.Token.AccessToken, ShouldNotBeEmpty)
				So(login.User.Username, ShouldEqual, "auth_flow_user")

				Convey("Access Token可以换回用户", func() {
					user, err := svc.ValidateToken(testCtx, login.Token.AccessToken)
					So(err, ShouldBeNil)
					So(user.ID, ShouldEqual, result.User.ID)
				})

				Convey("Refresh Token可以换取新Access Token", func() {
					refreshed, err := svc.RefreshToken(testCtx, login.Token.RefreshToken)
					So(err, ShouldBeNil)
					So(refreshed.AccessToken, ShouldNotBeEmpty)
				})

				Convey("退出登录后Refresh Token失效", func() {
					So(svc.Logout(testCtx, login.Token.RefreshToken), ShouldBeNil)

					_, err := svc.RefreshToken(testCtx, login.Token.RefreshToken)
					So(err, ShouldNotBeNil)
					So(apperr.KindOf(err), ShouldEqual, apperr.KindAuthentication)
				})
			})

			Convey("错误密码登录失败", func() {
				_, err := svc.Login(testCtx, "auth_flow_user", "wrongpassword")
				So(err, ShouldNotBeNil)
				So(apperr.KindOf(err), ShouldEqual, apperr.KindAuthentication)
			})

			Convey("不存在的用户登录失败（与密码错误同一种错误）", func() {
				_, errNoUser := svc.Login(testCtx, "no_such_user", "password123")
				_, errBadPwd := svc.Login(testCtx, "auth_flow_user", "wrongpassword")
				So(errNoUser, ShouldNotBeNil)
				So(errBadPwd, ShouldNotBeNil)
				So(errNoUser.Error(), ShouldEqual, errBadPwd.Error())
			})
		})
	})
}

// TestBannedUserLogin 被封禁用户保留登录能力
func TestBannedUserLogin(t *testing.T) {
	skipIfNoMongo(t)

	Convey("封禁用户登录", t, func() {
		authSvc := testServices.AuthService
		userSvc := testServices.UserService

		_, err := authSvc.Register(testCtx, "banned_login_user", "banned_login_user@example.com",
			"password123", "password123", "", "")
		So(err, ShouldBeNil)

		user, err := testServices.UserRepo.FindByUsername(testCtx, "banned_login_user")
		So(err, ShouldBeNil)

		Convey("封禁后仍可登录，用户带封禁标记", func() {
			_, err := userSvc.Ban(testCtx, user.ID, "spamming")
			So(err, ShouldBeNil)

			login, err := authSvc.Login(testCtx, "banned_login_user", "password123")
			So(err, ShouldBeNil)
			So(login.User.IsBanned, ShouldBeTrue)
			So(login.User.BannedReason, ShouldEqual, "spamming")

			Convey("解封后封禁标记清除", func() {
				unbanned, err := userSvc.Unban(testCtx, user.ID)
				So(err, ShouldBeNil)
				So(unbanned.IsBanned, ShouldBeFalse)
				So(unbanned.BannedReason, ShouldBeEmpty)
			})
		})
	})
}

// TestBanStaffRejected staff不可被封禁
func TestBanStaffRejected(t *testing.T) {
	skipIfNoMongo(t)

	Convey("封禁staff", t, func() {
		staff := createTestUser(t, "ban_target_staff", true)

		_, err := testServices.UserService.Ban(testCtx, staff.ID, "should not work")
		So(err, ShouldNotBeNil)
		So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)

		Convey("解封是无条件幂等的", func() {
			normal := createTestUser(t, "unban_idempotent_user", false)
			// 未封禁直接解封也成功
			result, err := testServices.UserService.Unban(testCtx, normal.ID)
			So(err, ShouldBeNil)
			So(result.IsBanned, ShouldBeFalse)
		})
	})
}
