package layout

import (
	"fmt"
	"math/rand/v2"
)

// GapSeed1 与 GapSeed2 是间隙抽样器的固定种子。修改它们会改变所有两端对齐行的
// 空格分布，golden 输出也随之失效。
const (
	GapSeed1 uint64 = 0x71756c6c
	GapSeed2 uint64 = 0x6a757374
)

// SampleGaps 从 [0, g) 中不放回地均匀抽取 k 个不同的整数。
// 每次调用都用固定种子新建生成器，因此相同输入总是得到相同输出。
// 返回值的顺序没有意义，调用方只关心集合成员。k > g 属于调用方错误，直接 panic。
func SampleGaps(k, g int) []int {
	if k < 0 || g < 0 || k > g {
		panic(fmt.Sprintf("layout: 无法从 %d 个间隙中抽取 %d 个", g, k))
	}
	if k == 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(GapSeed1, GapSeed2))
	pool := make([]int, g)
	for i := range pool {
		pool[i] = i
	}
	// 部分 Fisher–Yates：只洗前 k 个位置。
	for i := 0; i < k; i++ {
		j := i + rng.IntN(g-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}
