//go:build !mobile

// 普通构建时的占位文件，移动端入口在 mobile.go 中，仅在 -tags mobile 时编译
package mobile

// Dummy 保证包在非移动端构建时也能被引用
func Dummy() {}
