// Package slugutil slug生成工具
// slug由标题派生，仅生成一次；同名冲突时由调用方追加数字后缀重试。
package slugutil

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Make 根据标题生成URL安全的slug
func Make(title string) string {
	s := slug.Make(title)
	if s == "" {
		s = "untitled"
	}
	return s
}

// WithSuffix 生成带数字后缀的候选slug
// n=0 返回base本身，n>0 返回 base-n（base、base-1、base-2……确定性序列）
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
