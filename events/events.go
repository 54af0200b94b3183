// Package events publica los eventos de creación de la clínica.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// El productor es síncrono y se llama dentro de cada alta, así que el lote
// se envía a los tiempoLote y la escritura no pasa de tiempoPublicacion.
const (
	tiempoLote        = 10 * time.Millisecond
	tiempoPublicacion = 3 * time.Second
)

const (
	ConsultaCreada     = "consulta_creada"
	PacienteCreado     = "paciente_creado"
	MedicoCreado       = "medico_creado"
	EspecialidadCreada = "especialidad_creada"
)

// Evento es el sobre JSON que viaja por el tópico
type Evento struct {
	ID    string      `json:"id"`
	Tipo  string      `json:"tipo"`
	Fecha time.Time   `json:"fecha"`
	Clave string      `json:"-"`
	Datos interface{} `json:"datos"`
}

// NuevoEvento arma un evento con id aleatorio. La clave agrupa los eventos
// de una misma entidad en la misma partición.
func NuevoEvento(tipo string, id int, datos interface{}) Evento {
	return Evento{
		ID:    uuid.NewString(),
		Tipo:  tipo,
		Fecha: time.Now().UTC(),
		Clave: fmt.Sprintf("%s-%d", tipo, id),
		Datos: datos,
	}
}

type Publicador interface {
	Publicar(ctx context.Context, e Evento) error
	Close() error
}

// escritor es la parte de kafka.Writer que se usa
type escritor interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublicador publica cada evento como un mensaje JSON
type KafkaPublicador struct {
	writer escritor
	topic  string
	logger zerolog.Logger
}

// NuevoKafkaPublicador crea el productor para los brokers y el tópico dados
func NuevoKafkaPublicador(brokers []string, topic string, logger zerolog.Logger) (*KafkaPublicador, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS no configurada")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           tiempoLote,
		WriteTimeout:           tiempoPublicacion,
		AllowAutoTopicCreation: true,
	}
	logger.Info().Str("topic", topic).Strs("brokers", brokers).Msg("productor kafka creado")
	return &KafkaPublicador{writer: writer, topic: topic, logger: logger}, nil
}

// Publicar espera como máximo tiempoPublicacion
func (p *KafkaPublicador) Publicar(ctx context.Context, e Evento) error {
	valor, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("serializar evento %s: %w", e.Tipo, err)
	}
	ctx, cancel := context.WithTimeout(ctx, tiempoPublicacion)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Clave),
		Value: valor,
		Headers: []kafka.Header{
			{Key: "tipo", Value: []byte(e.Tipo)},
		},
	})
	if err != nil {
		return fmt.Errorf("publicar evento %s: %w", e.Tipo, err)
	}
	p.logger.Debug().Str("topic", p.topic).Str("tipo", e.Tipo).Str("key", e.Clave).Msg("evento publicado")
	return nil
}

func (p *KafkaPublicador) Close() error {
	return p.writer.Close()
}

// Nulo descarta los eventos; se usa cuando Kafka no está configurado
type Nulo struct{}

func (Nulo) Publicar(context.Context, Evento) error { return nil }
func (Nulo) Close() error { return nil }
