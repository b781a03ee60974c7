package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	apierrors "github.com/taskhive/marketplace-api/internal/errors"
	"github.com/taskhive/marketplace-api/internal/models"
	"github.com/taskhive/marketplace-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// LifecycleServiceTestSuite defines the test suite for LifecycleService
type LifecycleServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *LifecycleService
}

// SetupTest runs before each test
func (suite *LifecycleServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	// A single in-memory sqlite handle; one open connection keeps every
	// goroutine on the same database and serializes transactions.
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskImage{},
		&models.Bid{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	bidRepo := repository.NewBidRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	emitter := NewStoreEmitter(repository.NewNotificationRepository(suite.db))

	suite.service = NewLifecycleService(taskRepo, bidRepo, userRepo, emitter)
}

// TearDownTest runs after each test
func (suite *LifecycleServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helpers

func (suite *LifecycleServiceTestSuite) createUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		DisplayName:  email,
		Role:         role,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *LifecycleServiceTestSuite) createPendingTask(clientID uint64, budget float64) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:    "Assemble furniture",
		Budget:   budget,
		Category: "assembly",
		Location: "Springfield",
		ClientID: clientID,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *LifecycleServiceTestSuite) submitBid(taskID, taskerID uint64, amount float64) *models.Bid {
	bid, err := suite.service.SubmitBid(SubmitBidInput{
		TaskID:   taskID,
		TaskerID: taskerID,
		Amount:   amount,
	})
	suite.Require().NoError(err)
	return bid
}

func (suite *LifecycleServiceTestSuite) reloadTask(id uint64) *models.Task {
	var task models.Task
	suite.Require().NoError(suite.db.First(&task, id).Error)
	return &task
}

func (suite *LifecycleServiceTestSuite) reloadBid(id uint64) *models.Bid {
	var bid models.Bid
	suite.Require().NoError(suite.db.First(&bid, id).Error)
	return &bid
}

func (suite *LifecycleServiceTestSuite) notificationCount(userID uint64) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

// Task creation

func (suite *LifecycleServiceTestSuite) TestCreateTask_Success() {
	client := suite.createUser("client@example.com", models.RoleClient)

	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:       "Paint the fence",
		Description: "White, two coats",
		Budget:      50,
		Category:    "painting",
		Location:    "Springfield",
		ImageURLs:   []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"},
		ClientID:    client.ID,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
	assert.Nil(suite.T(), task.AssignedTaskerID)
	assert.Equal(suite.T(), uint(0), task.BidCount)
	assert.Len(suite.T(), task.Images, 2)
	assert.Equal(suite.T(), 0, task.Images[0].Position)

	// Creation emits no notification
	assert.Equal(suite.T(), int64(0), suite.notificationCount(client.ID))
}

func (suite *LifecycleServiceTestSuite) TestCreateTask_CoordinatesOnly() {
	client := suite.createUser("client@example.com", models.RoleClient)

	lat, lng := 39.78, -89.65
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:     "Mow the lawn",
		Budget:    30,
		Category:  "gardening",
		Latitude:  &lat,
		Longitude: &lng,
		ClientID:  client.ID,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
}

func (suite *LifecycleServiceTestSuite) TestCreateTask_Validation() {
	client := suite.createUser("client@example.com", models.RoleClient)

	cases := []CreateTaskInput{
		{Title: "", Budget: 50, Category: "painting", Location: "x", ClientID: client.ID},
		{Title: "t", Budget: 0, Category: "painting", Location: "x", ClientID: client.ID},
		{Title: "t", Budget: -5, Category: "painting", Location: "x", ClientID: client.ID},
		{Title: "t", Budget: 50, Category: "", Location: "x", ClientID: client.ID},
		{Title: "t", Budget: 50, Category: "painting", ClientID: client.ID},
	}

	for i, input := range cases {
		_, err := suite.service.CreateTask(input)
		assert.Equal(suite.T(), apierrors.KindValidation, apierrors.KindOf(err), "case %d", i)
	}
}

// Bid submission

func (suite *LifecycleServiceTestSuite) TestSubmitBid_Success() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)

	bid, err := suite.service.SubmitBid(SubmitBidInput{
		TaskID:   task.ID,
		TaskerID: tasker.ID,
		Amount:   40,
		Message:  "Can start tomorrow",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BidStatusPending, bid.Status)
	assert.Equal(suite.T(), uint(1), suite.reloadTask(task.ID).BidCount)

	// The task's client is notified
	assert.Equal(suite.T(), int64(1), suite.notificationCount(client.ID))
}

func (suite *LifecycleServiceTestSuite) TestSubmitBid_Validation() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)

	_, err := suite.service.SubmitBid(SubmitBidInput{TaskID: task.ID, TaskerID: tasker.ID, Amount: 0})
	assert.Equal(suite.T(), apierrors.KindValidation, apierrors.KindOf(err))

	_, err = suite.service.SubmitBid(SubmitBidInput{
		TaskID:   task.ID,
		TaskerID: tasker.ID,
		Amount:   40,
		Message:  strings.Repeat("a", 351),
	})
	assert.Equal(suite.T(), apierrors.KindValidation, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestSubmitBid_TaskNotFound() {
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)

	_, err := suite.service.SubmitBid(SubmitBidInput{TaskID: 9999, TaskerID: tasker.ID, Amount: 40})
	assert.Equal(suite.T(), apierrors.KindNotFound, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestSubmitBid_DuplicatePendingBid() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)

	suite.submitBid(task.ID, tasker.ID, 40)

	_, err := suite.service.SubmitBid(SubmitBidInput{TaskID: task.ID, TaskerID: tasker.ID, Amount: 35})
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))
	assert.Equal(suite.T(), uint(1), suite.reloadTask(task.ID).BidCount)
}

func (suite *LifecycleServiceTestSuite) TestSubmitBid_OwnTask() {
	client := suite.createUser("client@example.com", models.RoleClient)
	task := suite.createPendingTask(client.ID, 50)

	_, err := suite.service.SubmitBid(SubmitBidInput{TaskID: task.ID, TaskerID: client.ID, Amount: 40})
	assert.Equal(suite.T(), apierrors.KindValidation, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestSubmitBid_ClientRoleRejected() {
	client := suite.createUser("client@example.com", models.RoleClient)
	otherClient := suite.createUser("client2@example.com", models.RoleClient)
	task := suite.createPendingTask(client.ID, 50)

	_, err := suite.service.SubmitBid(SubmitBidInput{TaskID: task.ID, TaskerID: otherClient.ID, Amount: 40})
	assert.Equal(suite.T(), apierrors.KindValidation, apierrors.KindOf(err))
}

// Acceptance

func (suite *LifecycleServiceTestSuite) TestAcceptBid_Scenario() {
	client := suite.createUser("client@example.com", models.RoleClient)
	taskerA := suite.createUser("a@example.com", models.RoleTasker)
	taskerC := suite.createUser("c@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)

	b1 := suite.submitBid(task.ID, taskerA.ID, 40)
	b2 := suite.submitBid(task.ID, taskerC.ID, 45)
	assert.Equal(suite.T(), uint(2), suite.reloadTask(task.ID).BidCount)

	accepted, err := suite.service.AcceptBid(b1.ID, client.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BidStatusAccepted, accepted.Status)

	assert.Equal(suite.T(), models.BidStatusRejected, suite.reloadBid(b2.ID).Status)

	reloaded := suite.reloadTask(task.ID)
	assert.Equal(suite.T(), models.TaskStatusStarted, reloaded.Status)
	suite.Require().NotNil(reloaded.AssignedTaskerID)
	assert.Equal(suite.T(), taskerA.ID, *reloaded.AssignedTaskerID)

	// The hired tasker is notified
	assert.Equal(suite.T(), int64(1), suite.notificationCount(taskerA.ID))

	// A late accept on the losing bid fails cleanly
	_, err = suite.service.AcceptBid(b2.ID, client.ID)
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestAcceptBid_NotFound() {
	client := suite.createUser("client@example.com", models.RoleClient)

	_, err := suite.service.AcceptBid(9999, client.ID)
	assert.Equal(suite.T(), apierrors.KindNotFound, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestAcceptBid_NotOwner() {
	client := suite.createUser("client@example.com", models.RoleClient)
	stranger := suite.createUser("stranger@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	_, err := suite.service.AcceptBid(bid.ID, stranger.ID)
	assert.ErrorIs(suite.T(), err, ErrNotTaskOwner)
	assert.Equal(suite.T(), models.TaskStatusPending, suite.reloadTask(task.ID).Status)
}

func (suite *LifecycleServiceTestSuite) TestAcceptBid_ConcurrentAccepts() {
	client := suite.createUser("client@example.com", models.RoleClient)
	task := suite.createPendingTask(client.ID, 100)

	const bidders = 5
	bidIDs := make([]uint64, 0, bidders)
	taskerByBid := make(map[uint64]uint64)
	for i := 0; i < bidders; i++ {
		tasker := suite.createUser(fmt.Sprintf("tasker%d@example.com", i), models.RoleTasker)
		bid := suite.submitBid(task.ID, tasker.ID, float64(50+i))
		bidIDs = append(bidIDs, bid.ID)
		taskerByBid[bid.ID] = tasker.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, bidders)
	for i, bidID := range bidIDs {
		wg.Add(1)
		go func(i int, bidID uint64) {
			defer wg.Done()
			_, errs[i] = suite.service.AcceptBid(bidID, client.ID)
		}(i, bidID)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		kind := apierrors.KindOf(err)
		assert.Contains(suite.T(), []apierrors.Kind{apierrors.KindInvalidState, apierrors.KindConflict}, kind)
	}
	assert.Equal(suite.T(), 1, successes)

	reloaded := suite.reloadTask(task.ID)
	assert.Equal(suite.T(), models.TaskStatusStarted, reloaded.Status)
	suite.Require().NotNil(reloaded.AssignedTaskerID)

	var acceptedBids []models.Bid
	suite.Require().NoError(suite.db.Where("task_id = ? AND status = ?", task.ID, models.BidStatusAccepted).Find(&acceptedBids).Error)
	suite.Require().Len(acceptedBids, 1)
	assert.Equal(suite.T(), taskerByBid[acceptedBids[0].ID], *reloaded.AssignedTaskerID)

	var rejected int64
	suite.Require().NoError(suite.db.Model(&models.Bid{}).Where("task_id = ? AND status = ?", task.ID, models.BidStatusRejected).Count(&rejected).Error)
	assert.Equal(suite.T(), int64(bidders-1), rejected)
}

// Edit / withdraw

func (suite *LifecycleServiceTestSuite) TestEditBid_Success() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	edited, err := suite.service.EditBid(EditBidInput{
		BidID:    bid.ID,
		TaskerID: tasker.ID,
		Amount:   35,
		Message:  "Revised offer",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 35.0, edited.Amount)
	assert.Equal(suite.T(), models.BidStatusPending, edited.Status)
	assert.Equal(suite.T(), uint(1), suite.reloadTask(task.ID).BidCount)
}

func (suite *LifecycleServiceTestSuite) TestEditBid_NotAuthor() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	other := suite.createUser("other@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	_, err := suite.service.EditBid(EditBidInput{BidID: bid.ID, TaskerID: other.ID, Amount: 30})
	assert.ErrorIs(suite.T(), err, ErrNotBidAuthor)
}

func (suite *LifecycleServiceTestSuite) TestWithdrawBid_Success() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	err := suite.service.WithdrawBid(bid.ID, tasker.ID)
	assert.NoError(suite.T(), err)

	reloaded := suite.reloadTask(task.ID)
	assert.Equal(suite.T(), uint(0), reloaded.BidCount)
	assert.Equal(suite.T(), models.TaskStatusPending, reloaded.Status)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Bid{}).Where("task_id = ?", task.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *LifecycleServiceTestSuite) TestEditAndWithdraw_AfterBiddingClosed() {
	client := suite.createUser("client@example.com", models.RoleClient)
	taskerA := suite.createUser("a@example.com", models.RoleTasker)
	taskerB := suite.createUser("b@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)

	winner := suite.submitBid(task.ID, taskerA.ID, 40)
	loser := suite.submitBid(task.ID, taskerB.ID, 45)

	_, err := suite.service.AcceptBid(winner.ID, client.ID)
	suite.Require().NoError(err)

	_, err = suite.service.EditBid(EditBidInput{BidID: loser.ID, TaskerID: taskerB.ID, Amount: 30})
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))

	err = suite.service.WithdrawBid(loser.ID, taskerB.ID)
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))

	_, err = suite.service.SubmitBid(SubmitBidInput{TaskID: task.ID, TaskerID: taskerB.ID, Amount: 20})
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))
}

// Cancellation / completion

func (suite *LifecycleServiceTestSuite) TestCancelTask_PendingByClient() {
	client := suite.createUser("client@example.com", models.RoleClient)
	task := suite.createPendingTask(client.ID, 50)

	cancelled, err := suite.service.CancelTask(task.ID, client.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusCancelled, cancelled.Status)
	suite.Require().NotNil(cancelled.CancelledBy)
	assert.Equal(suite.T(), client.ID, *cancelled.CancelledBy)
	assert.NotNil(suite.T(), cancelled.CancelledAt)
	assert.Nil(suite.T(), cancelled.CompletedAt)

	// No tasker assigned, so nobody to notify
	assert.Equal(suite.T(), int64(0), suite.notificationCount(client.ID))
}

func (suite *LifecycleServiceTestSuite) TestCancelTask_StartedByClient_NotifiesTasker() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	_, err := suite.service.AcceptBid(bid.ID, client.ID)
	suite.Require().NoError(err)
	before := suite.notificationCount(tasker.ID)

	cancelled, err := suite.service.CancelTask(task.ID, client.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusCancelled, cancelled.Status)
	assert.Equal(suite.T(), before+1, suite.notificationCount(tasker.ID))

	// The accepted bid keeps its status; the task's terminal state is
	// what blocks further activity.
	assert.Equal(suite.T(), models.BidStatusAccepted, suite.reloadBid(bid.ID).Status)
}

func (suite *LifecycleServiceTestSuite) TestCancelTask_StartedByTasker_NotifiesClient() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	_, err := suite.service.AcceptBid(bid.ID, client.ID)
	suite.Require().NoError(err)
	before := suite.notificationCount(client.ID)

	_, err = suite.service.CancelTask(task.ID, tasker.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), before+1, suite.notificationCount(client.ID))
}

func (suite *LifecycleServiceTestSuite) TestCancelTask_NotParticipant() {
	client := suite.createUser("client@example.com", models.RoleClient)
	stranger := suite.createUser("stranger@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)

	_, err := suite.service.CancelTask(task.ID, stranger.ID)
	assert.ErrorIs(suite.T(), err, ErrNotTaskParticipant)
}

func (suite *LifecycleServiceTestSuite) TestCancelTask_AlreadyCancelled() {
	client := suite.createUser("client@example.com", models.RoleClient)
	task := suite.createPendingTask(client.ID, 50)

	_, err := suite.service.CancelTask(task.ID, client.ID)
	suite.Require().NoError(err)

	_, err = suite.service.CancelTask(task.ID, client.ID)
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestCompleteTask_Scenario() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	_, err := suite.service.AcceptBid(bid.ID, client.ID)
	suite.Require().NoError(err)
	before := suite.notificationCount(tasker.ID)

	completed, err := suite.service.CompleteTask(task.ID, client.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, completed.Status)
	assert.NotNil(suite.T(), completed.CompletedAt)
	assert.Nil(suite.T(), completed.CancelledAt)
	assert.Equal(suite.T(), before+1, suite.notificationCount(tasker.ID))

	// A cancel after completion fails and changes nothing
	_, err = suite.service.CancelTask(task.ID, client.ID)
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))
	assert.Equal(suite.T(), models.TaskStatusCompleted, suite.reloadTask(task.ID).Status)

	// Completing twice fails and emits no duplicate notification
	_, err = suite.service.CompleteTask(task.ID, client.ID)
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))
	assert.Equal(suite.T(), before+1, suite.notificationCount(tasker.ID))
}

func (suite *LifecycleServiceTestSuite) TestCompleteTask_PendingRejected() {
	client := suite.createUser("client@example.com", models.RoleClient)
	task := suite.createPendingTask(client.ID, 50)

	_, err := suite.service.CompleteTask(task.ID, client.ID)
	assert.Equal(suite.T(), apierrors.KindInvalidState, apierrors.KindOf(err))
}

// Queries

func (suite *LifecycleServiceTestSuite) TestGetTask_NotFound() {
	_, err := suite.service.GetTask(9999)
	assert.Equal(suite.T(), apierrors.KindNotFound, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestListBidsForTask() {
	client := suite.createUser("client@example.com", models.RoleClient)
	taskerA := suite.createUser("a@example.com", models.RoleTasker)
	taskerB := suite.createUser("b@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	suite.submitBid(task.ID, taskerA.ID, 40)
	suite.submitBid(task.ID, taskerB.ID, 45)

	bids, err := suite.service.ListBidsForTask(task.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bids, 2)

	_, err = suite.service.ListBidsForTask(9999)
	assert.Equal(suite.T(), apierrors.KindNotFound, apierrors.KindOf(err))
}

func (suite *LifecycleServiceTestSuite) TestListBidsByTasker() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task1 := suite.createPendingTask(client.ID, 50)
	task2 := suite.createPendingTask(client.ID, 60)
	suite.submitBid(task1.ID, tasker.ID, 40)
	suite.submitBid(task2.ID, tasker.ID, 55)

	bids, err := suite.service.ListBidsByTasker(tasker.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bids, 2)
}

func (suite *LifecycleServiceTestSuite) TestListTasksByTaskerAndType() {
	client := suite.createUser("client@example.com", models.RoleClient)
	tasker := suite.createUser("tasker@example.com", models.RoleTasker)
	task := suite.createPendingTask(client.ID, 50)
	bid := suite.submitBid(task.ID, tasker.ID, 40)

	_, err := suite.service.AcceptBid(bid.ID, client.ID)
	suite.Require().NoError(err)

	active, err := suite.service.ListTasksByTaskerAndType(tasker.ID, "active")
	assert.NoError(suite.T(), err)
	suite.Require().Len(active, 1)
	assert.Equal(suite.T(), task.ID, active[0].ID)

	past, err := suite.service.ListTasksByTaskerAndType(tasker.ID, "past")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), past, 0)

	_, err = suite.service.CompleteTask(task.ID, client.ID)
	suite.Require().NoError(err)

	active, err = suite.service.ListTasksByTaskerAndType(tasker.ID, "active")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), active, 0)

	past, err = suite.service.ListTasksByTaskerAndType(tasker.ID, "past")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), past, 1)

	_, err = suite.service.ListTasksByTaskerAndType(tasker.ID, "someday")
	assert.Equal(suite.T(), apierrors.KindValidation, apierrors.KindOf(err))
}

func TestLifecycleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LifecycleServiceTestSuite))
}
