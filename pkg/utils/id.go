package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// Alfabeto sem caracteres ambíguos (0/O, 1/l/I) para IDs lidos em logs e e-mails
const idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const (
	RunIDLength     = 8
	MessageIDLength = 12
)

// GenerateRunID gera o identificador de uma execução do pipeline
func GenerateRunID() (string, error) {
	return gonanoid.Generate(idAlphabet, RunIDLength)
}

// GenerateMessageID gera o identificador local de um e-mail
func GenerateMessageID() (string, error) {
	return gonanoid.Generate(idAlphabet, MessageIDLength)
}
