package document

// Status 审核状态
type Status string

const (
	StatusPending  Status = "pending"  // 待审核（创建时的初始状态）
	StatusApproved Status = "approved" // 已通过
	StatusRejected Status = "rejected" // 已驳回
)

// IsValid 检查状态是否有效
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// String 返回状态字符串
func (s Status) String() string {
	return string(s)
}

// Language 文档语言
type Language string

const (
	LanguageEN Language = "en" // 英语
	LanguageFR Language = "fr" // 法语
)

// IsValid 检查语言是否有效
func (l Language) IsValid() bool {
	return l == LanguageEN || l == LanguageFR
}

// License 文档许可协议
type License string

const (
	LicenseCC0      License = "cc0"         // CC0 - 公有领域
	LicenseCCBY     License = "cc-by"       // CC BY - 署名
	LicenseCCBYSA   License = "cc-by-sa"    // CC BY-SA - 署名-相同方式共享
	LicenseCCBYND   License = "cc-by-nd"    // CC BY-ND - 署名-禁止演绎
	LicenseCCBYNC   License = "cc-by-nc"    // CC BY-NC - 署名-非商业
	LicenseCCBYNCSA License = "cc-by-nc-sa" // CC BY-NC-SA
	LicenseCCBYNCND License = "cc-by-nc-nd" // CC BY-NC-ND
	LicenseOther    License = "other"       // 其他
)

// IsValid 检查许可协议是否有效
func (l License) IsValid() bool {
	switch l {
	case LicenseCC0, LicenseCCBY, LicenseCCBYSA, LicenseCCBYND,
		LicenseCCBYNC, LicenseCCBYNCSA, LicenseCCBYNCND, LicenseOther:
		return true
	}
	return false
}
