// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/push"
)

// humanizeError turns controller errors into one status line.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var transportErr *adapter.TransportError
	var channelErr *push.ChannelError
	switch {
	case errors.Is(err, adapter.ErrValidation):
		return "Название не может быть пустым"
	case errors.Is(err, adapter.ErrNotFound):
		return "Запись не найдена (возможно, уже удалена)"
	case errors.Is(err, config.ErrInvalidEndpointConfigs):
		return "Профиль не настроен: " + err.Error()
	case errors.As(err, &transportErr):
		switch transportErr.Kind {
		case adapter.KindTimeout:
			return "Сервер не ответил вовремя"
		case adapter.KindConnectionRefused, adapter.KindNetwork:
			return "Отсутствует сеть или Сервер недоступен"
		case adapter.KindBadStatus:
			return "Сервер вернул ошибку: " + err.Error()
		}
	case errors.As(err, &channelErr):
		return "Канал обновлений: " + channelErr.Reason
	}

	return err.Error()
}
