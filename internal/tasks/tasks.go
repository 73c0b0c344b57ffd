package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registered for image.Decode
	"io"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"github.com/redis/go-redis/v9"

	"github.com/weslymega/testefeirastudio-sub000/internal/config"
	"github.com/weslymega/testefeirastudio-sub000/internal/email"
	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

// Task types.
const (
	TypeEmailDelivery    = "email:deliver"
	TypeImageProcess     = "image:process"
	TypeEnquiryAutoReply = "enquiry:auto_reply"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// Enqueuer is the narrow slice of asynq.Client the HTTP layer needs, kept as
// an interface so handler tests can capture enqueued tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EmailTaskPayload is the payload of TypeEmailDelivery.
type EmailTaskPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewEmailDeliveryTask builds an email delivery task.
func NewEmailDeliveryTask(to, subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailTaskPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailDelivery, payload, asynq.Queue("default")), nil
}

// ImageTaskPayload is the payload of TypeImageProcess.
type ImageTaskPayload struct {
	S3Key     string `json:"s3_key"`
	ListingID string `json:"listing_id"`
}

// NewImageProcessTask builds an image normalization task for a freshly
// uploaded object.
func NewImageProcessTask(s3Key, listingID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageTaskPayload{S3Key: s3Key, ListingID: listingID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImageProcess, payload, asynq.Queue("images")), nil
}

// EnquiryAutoReplyPayload is the payload of TypeEnquiryAutoReply.
type EnquiryAutoReplyPayload struct {
	ListingID    string `json:"listing_id"`
	ListingTitle string `json:"listing_title"`
	OwnerName    string `json:"owner_name"`
}

// NewEnquiryAutoReplyTask builds the simulated seller reply to an enquiry,
// delivered after delay.
func NewEnquiryAutoReplyTask(listingID, listingTitle, ownerName string, delay time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(EnquiryAutoReplyPayload{
		ListingID:    listingID,
		ListingTitle: listingTitle,
		OwnerName:    ownerName,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEnquiryAutoReply, payload, asynq.Queue("default"), asynq.ProcessIn(delay)), nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg           *config.Config
	emailSender   email.Sender
	notifications services.INotificationService
	s3Client      *s3.Client
}

func NewTaskProcessor(
	cfg *config.Config,
	emailSender email.Sender,
	notifications services.INotificationService,
	s3Client *s3.Client,
) *TaskProcessor {
	return &TaskProcessor{
		cfg:           cfg,
		emailSender:   emailSender,
		notifications: notifications,
		s3Client:      s3Client,
	}
}

// SetupServer configures an Asynq server instance and the mux routing its
// tasks; the caller runs it. In API mode (neither worker flag set) both
// return values are nil.
func SetupServer(rdb *redis.Client, processor *TaskProcessor, isImageWorker bool, isBgWorker bool) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	// Each worker only drains the queues it has handlers for.
	queues := map[string]int{}
	if isBgWorker {
		queues["critical"] = 6
		queues["default"] = 3
		queues["low"] = 1
	}
	if isImageWorker {
		queues["images"] = 5
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: queues,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()

	if isBgWorker {
		mux.HandleFunc(TypeEmailDelivery, processor.HandleEmailDeliveryTask)
		mux.HandleFunc(TypeEnquiryAutoReply, processor.HandleEnquiryAutoReplyTask)
		log.Println("Registered background task handlers (email & enquiry replies).")
	}

	if isImageWorker {
		mux.HandleFunc(TypeImageProcess, processor.HandleImageProcessTask)
		log.Println("Registered image processing task handlers.")
	}

	if !isBgWorker && !isImageWorker {
		log.Println("Running in API mode, no task server started.")
		return nil, nil
	}

	return srv, mux
}

// --- Task Handlers ---

// HandleEmailDeliveryTask processes email delivery tasks.
func (p *TaskProcessor) HandleEmailDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var payload EmailTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal email task payload: %v: %w", err, asynq.SkipRetry)
	}

	fromAddress := p.cfg.SmtpFromAddress

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To: %s\r\n", payload.To))
	sb.WriteString(fmt.Sprintf("From: %s\r\n", fromAddress))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", payload.Subject))
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(payload.Body)
	sb.WriteString("\r\n")

	if err := p.emailSender.Send(ctx, []string{payload.To}, payload.Subject, []byte(sb.String())); err != nil {
		log.Printf("Email sending failed for %s: %v", payload.To, err)
		return err
	}

	log.Printf("Email task processed successfully: To=%s, Subject=%s", payload.To, payload.Subject)
	return nil
}

// HandleEnquiryAutoReplyTask delivers the simulated seller response as a
// chat notification.
func (p *TaskProcessor) HandleEnquiryAutoReplyTask(ctx context.Context, t *asynq.Task) error {
	var payload EnquiryAutoReplyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal enquiry auto-reply payload: %v: %w", err, asynq.SkipRetry)
	}

	p.notifications.Add(ctx, models.Notification{
		Type:      models.NotificationChat,
		Title:     fmt.Sprintf("Resposta de %s", payload.OwnerName),
		Body:      fmt.Sprintf("Olá! Obrigado pelo interesse em \"%s\". O anúncio ainda está disponível, posso te passar mais detalhes.", payload.ListingTitle),
		ListingID: payload.ListingID,
	})

	log.Printf("Enquiry auto-reply delivered for listing %s", payload.ListingID)
	return nil
}

// HandleImageProcessTask normalizes a freshly uploaded listing image:
// downloads it, caps its dimensions, re-encodes as JPEG and overwrites the
// original object.
func (p *TaskProcessor) HandleImageProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image task payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Printf("Processing image task: S3Key=%s, ListingID=%s", payload.S3Key, payload.ListingID)

	getObjectOutput, err := p.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.cfg.AwsS3Bucket),
		Key:    aws.String(payload.S3Key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			log.Printf("S3 object %s not found, likely upload failed or key incorrect.", payload.S3Key)
			return fmt.Errorf("s3 object not found: %w", asynq.SkipRetry)
		}
		return fmt.Errorf("failed to download image from S3: %w", err)
	}
	defer getObjectOutput.Body.Close()

	imgData, err := io.ReadAll(getObjectOutput.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		log.Printf("Error decoding image for key %s: %v", payload.S3Key, err)
		return fmt.Errorf("unsupported image format or corrupt image: %w", asynq.SkipRetry)
	}

	maxDim := img.Bounds().Dx()
	if img.Bounds().Dy() > maxDim {
		maxDim = img.Bounds().Dy()
	}
	if maxDim <= p.cfg.ImageMaxDimension && format == "jpeg" {
		log.Printf("Image %s already within limits (%dx%d), nothing to do.", payload.S3Key, img.Bounds().Dx(), img.Bounds().Dy())
		return nil
	}

	limit := uint(p.cfg.ImageMaxDimension)
	resized := resize.Thumbnail(limit, limit, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to re-encode resized image: %w", err)
	}

	_, err = p.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.AwsS3Bucket),
		Key:         aws.String(payload.S3Key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload processed image: %w", err)
	}

	log.Printf("Image task processed successfully: Key=%s, ListingID=%s (%dx%d)",
		payload.S3Key, payload.ListingID, resized.Bounds().Dx(), resized.Bounds().Dy())
	return nil
}
