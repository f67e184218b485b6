package inquiry

import "github.com/MutasemKharma/reva-chalets/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
