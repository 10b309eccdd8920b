package document

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListOptions 文档列表查询条件
// ViewerIsModerator描述调用方身份，用于计算可见范围；其余字段是显式
// 筛选，两者取交集（普通用户筛status=pending只会得到空结果）
type ListOptions struct {
	Status       string   // 按状态筛选
	CategoryID   string   // 按分类ID筛选
	CategorySlug string   // 按分类slug筛选
	UploadedBy   string   // 按上传者筛选
	Language     string   // 按语言筛选
	License      string   // 按许可类型筛选
	Tags         []string // 标签筛选（任一命中即可）
	Search       string   // 标题/描述/标签模糊搜索

	ViewerIsModerator bool // 调用方是否为审核员
}

// tagRegex 匹配逗号分隔标签串中的一个完整标签
func tagRegex(tag string) primitive.Regex {
	return primitive.Regex{
		Pattern: `(^|,)\s*` + regexp.QuoteMeta(strings.TrimSpace(tag)) + `\s*(,|$)`,
		Options: "i",
	}
}

// BuildListFilter 构造列表查询的Mongo filter
// 显式筛选全部AND组合，标签列表内部OR；可见性规则：审核员看全部，
// 其他人（含登录用户）只看approved。自己的pending/rejected不进通用
// 列表，走my/documents和按slug直查
func BuildListFilter(opts ListOptions) bson.M {
	filter := bson.M{}

	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.CategoryID != "" {
		filter["category_id"] = opts.CategoryID
	}
	if opts.CategorySlug != "" {
		filter["category_slug"] = opts.CategorySlug
	}
	if opts.UploadedBy != "" {
		filter["uploaded_by"] = opts.UploadedBy
	}
	if opts.Language != "" {
		filter["language"] = opts.Language
	}
	if opts.License != "" {
		filter["license"] = opts.License
	}

	// 顶层$or只能出现一次，带$or的子条件统一收进$and
	var ands []bson.M

	if len(opts.Tags) > 0 {
		anyTag := make([]bson.M, 0, len(opts.Tags))
		for _, tag := range opts.Tags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			anyTag = append(anyTag, bson.M{"tags": tagRegex(tag)})
		}
		if len(anyTag) > 0 {
			ands = append(ands, bson.M{"$or": anyTag})
		}
	}

	if opts.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Search), Options: "i"}
		ands = append(ands, bson.M{"$or": []bson.M{
			{"title": re},
			{"description": re},
			{"tags": re},
		}})
	}

	if !opts.ViewerIsModerator {
		// 显式status筛选与可见范围取交集，不能互相覆盖
		ands = append(ands, bson.M{"status": "approved"})
	}

	if len(ands) == 0 {
		return filter
	}
	if len(filter) == 0 && len(ands) == 1 {
		return ands[0]
	}
	if len(filter) > 0 {
		ands = append([]bson.M{filter}, ands...)
	}
	return bson.M{"$and": ands}
}
