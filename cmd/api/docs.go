package main

// @title           Gemini Chat API
// @version         1.0
// @description     API de chat com o Google Gemini e histórico de conversas

// @contact.name   API Support

// @license.name  MIT

// @host      localhost:3000
// @BasePath  /
