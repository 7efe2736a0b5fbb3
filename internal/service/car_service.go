package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/store"
)

// carRepository is the subset of store.CarStore that CarService requires.
type carRepository interface {
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	List(ctx context.Context, opts store.ListOptions) ([]*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type CarService struct {
	cars   carRepository
	logger *slog.Logger
}

func NewCarService(cars carRepository, logger *slog.Logger) *CarService {
	return &CarService{cars: cars, logger: logger}
}

func (s *CarService) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	const op = "service.CarService.Create"
	log := s.logger.With(slog.String("op", op))

	normalizeCar(car)
	if err := domain.ValidateCar(car); err != nil {
		return nil, err
	}

	created, err := s.cars.Create(ctx, car)
	if err != nil {
		return nil, err
	}

	log.Info("car created", slog.String("id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// Get returns the car with id, or an error wrapping domain.ErrNotFound.
func (s *CarService) Get(ctx context.Context, id string) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, fmt.Errorf("car %s: %w", id, domain.ErrNotFound)
	}
	return car, nil
}

func (s *CarService) List(ctx context.Context, opts store.ListOptions) ([]*domain.Car, error) {
	return s.cars.List(ctx, opts)
}

func (s *CarService) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	const op = "service.CarService.Update"
	log := s.logger.With(slog.String("op", op))

	normalizeCar(car)
	if err := domain.ValidateCar(car); err != nil {
		return nil, err
	}

	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}

	log.Info("car updated", slog.String("id", car.ID))
	return s.Get(ctx, car.ID)
}

func (s *CarService) Delete(ctx context.Context, id string) error {
	const op = "service.CarService.Delete"

	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("car deleted", slog.String("op", op), slog.String("id", id))
	return nil
}

func (s *CarService) Count(ctx context.Context) (int, error) {
	return s.cars.Count(ctx)
}

func normalizeCar(car *domain.Car) {
	car.Name = strings.TrimSpace(car.Name)
	car.Team = strings.TrimSpace(car.Team)
	car.Engine = strings.TrimSpace(car.Engine)
}
