package driver

import (
	"traitgen/internal/project"
	"traitgen/internal/source"
	"traitgen/internal/version"
)

// cacheKey: H(content || generator version || input kind). Версия входит в
// ключ, чтобы новая сборка не читала раскрытия старой.
func cacheKey(file *source.File, kind InputKind) project.Digest {
	return project.Combine(project.Digest(file.Hash), []byte(version.CacheKey()), []byte{byte(kind)})
}
