package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.CatalogStore / core.RatingStore / core.UserStore 接口。
//
// 实现：
//   - MemoryStore 内存实现，用于测试/开发/原型
//   - SQLiteStore 单机持久化实现
//   - RedisStore  生产环境常用的远端实现
