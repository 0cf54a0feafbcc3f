package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule 每个 handler 自己挂载路由
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 按引擎实例收集模块（测试里会建多个引擎，不能用包级全局）
type Registry struct {
	mods []APIModule
}

func (r *Registry) Register(mods ...APIModule) {
	r.mods = append(r.mods, mods...)
}

// MountAll 在 api 分组上按优先级挂载所有模块
func (r *Registry) MountAll(api *gin.RouterGroup) {
	mods := append([]APIModule(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
