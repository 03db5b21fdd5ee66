package main

import (
	"log"
	"net/http"

	"github.com/spf13/viper"

	"github.com/Ciwooooo/ai-chat-app/pkg/llm"
	"github.com/Ciwooooo/ai-chat-app/pkg/web"
)

func main() {
	viper.SetEnvPrefix("AICHAT")
	viper.AutomaticEnv()

	viper.SetDefault("listen_addr", ":8000")
	viper.SetDefault("app_name", "AI Chat")
	viper.SetDefault("llm_base_url", "http://localhost:11434/v1")
	viper.SetDefault("llm_model", "llama3.2:1b")

	config := web.Config{
		ListenAddr: viper.GetString("listen_addr"),
		AppName:    viper.GetString("app_name"),
		LLMBaseURL: viper.GetString("llm_base_url"),
		LLMModel:   viper.GetString("llm_model"),
	}

	server := web.NewServer(config, llm.NewClient(config.LLMBaseURL, config.LLMModel))

	log.Printf("listening on %s, model %s at %s", config.ListenAddr, config.LLMModel, config.LLMBaseURL)
	if err := http.ListenAndServe(config.ListenAddr, server.Handler()); err != nil {
		log.Fatal(err)
	}
}
