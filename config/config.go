package config

// Config 客户端运行所需的完整配置。
// 功能：承载平台 API 根地址、认证令牌与传输层行为（超时、LRO 轮询周期）相关配置。
// 注意：认证令牌的获取方式由宿主决定，本组件只透传 Bearer Token。
type Config struct {
    BaseURL   string `yaml:"baseUrl" envconfig:"FABRIC_BASE_URL" default:"https://api.fabric.microsoft.com"`
    Token     string `yaml:"token" envconfig:"FABRIC_TOKEN"`
    UserAgent string `yaml:"userAgent" envconfig:"FABRIC_USER_AGENT"`

    TimeoutSeconds int `yaml:"timeoutSeconds" envconfig:"FABRIC_TIMEOUT_SECONDS" default:"30"`
    PollSeconds    int `yaml:"pollSeconds" envconfig:"FABRIC_POLL_SECONDS" default:"5"` // LRO 轮询间隔下限

    // DefaultWorkspace 未显式指定工作区时使用的名称或 ID。
    DefaultWorkspace string `yaml:"defaultWorkspace" envconfig:"FABRIC_DEFAULT_WORKSPACE"`
}
