// Package policy 集中定义资源访问规则
// 所有handler/service的权限判断都从这里走，避免各处散落重复逻辑
package policy

import (
	"isoko/internal/model/auth"
	"isoko/internal/model/document"
)

// IsModerator 判断用户是否拥有审核能力
// nil用户（匿名）没有任何审核能力
func IsModerator(u *auth.User) bool {
	return u != nil && u.IsModerator()
}

// CanModify 判断调用方能否修改/删除属于ownerID的资源
// 所有者或审核员可以，其他人一律拒绝
func CanModify(caller *auth.User, ownerID string) bool {
	if caller == nil {
		return false
	}
	return caller.ID == ownerID || caller.IsModerator()
}

// CanViewDocument 判断调用方能否查看文档
// 已通过审核的文档对所有人可见；pending/rejected仅所有者和审核员可见
func CanViewDocument(caller *auth.User, doc *document.Document) bool {
	if doc.IsApproved() {
		return true
	}
	if caller == nil {
		return false
	}
	return caller.ID == doc.UploadedBy || caller.IsModerator()
}

// CanUpload 判断用户能否上传文档
// 被封禁用户保留登录和浏览能力，但不能创建新内容
func CanUpload(u *auth.User) bool {
	return u != nil && !u.IsBanned
}

// CanBan 判断目标用户能否被封禁
// staff和superuser不可被封禁
func CanBan(target *auth.User) bool {
	return !target.IsStaff && !target.IsSuperuser
}
